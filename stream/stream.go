// Package stream is a small single-threaded push-stream library.
//
// A [Stream] is lazy and multicast: its producer starts when the first
// listener subscribes and stops when the last one leaves. Values are
// delivered synchronously, in subscription order, on the goroutine that
// emitted them. Nothing here is safe for concurrent use.
//
// Operators ([Map], [Filter], [Take], [EndWhen], [Merge], [SampleCombine],
// [Flatten], ...) are plain functions because Go methods cannot introduce
// type parameters.
package stream

// Listener receives the three signals a stream can produce. Any field may be
// nil.
type Listener[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// Emitter is handed to a producer so it can push signals downstream.
// Signals sent after the producer has been stopped are dropped.
type Emitter[T any] interface {
	Next(v T)
	Error(err error)
	Complete()
}

// Producer starts producing into em and returns a function that stops it.
// The stop function may be nil.
type Producer[T any] func(em Emitter[T]) (stop func())

// Subscription is the handle returned by [Stream.Subscribe].
type Subscription struct {
	cancel func()
	done   bool
}

// Unsubscribe detaches the listener. Calling it more than once, or after
// the stream has ended, is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.done {
		return
	}
	s.done = true
	if s.cancel != nil {
		s.cancel()
	}
}

// Closed reports whether the subscription no longer receives signals.
func (s *Subscription) Closed() bool {
	return s == nil || s.done
}

type entry[T any] struct {
	l   Listener[T]
	sub *Subscription
}

// Stream is a lazy multicast push stream.
type Stream[T any] struct {
	produce Producer[T]
	entries []*entry[T]
	running bool
	gen     uint64
	stop    func()
}

// Create returns a stream driven by p.
func Create[T any](p Producer[T]) *Stream[T] {
	return &Stream[T]{produce: p}
}

// Subscribe attaches l and starts the producer if this is the first
// listener.
func (s *Stream[T]) Subscribe(l Listener[T]) *Subscription {
	e := &entry[T]{l: l, sub: &Subscription{}}
	e.sub.cancel = func() { s.remove(e) }
	s.entries = append(s.entries, e)

	if s.produce != nil && !s.running {
		s.running = true
		s.gen++
		gen := s.gen
		stop := s.produce(sink[T]{s: s, gen: gen})
		if s.running && s.gen == gen {
			s.stop = stop
		} else if stop != nil {
			stop()
		}
	}
	return e.sub
}

// Listeners returns the number of attached listeners.
func (s *Stream[T]) Listeners() int {
	return len(s.entries)
}

// Active reports whether the producer is currently running.
func (s *Stream[T]) Active() bool {
	return s.running
}

func (s *Stream[T]) remove(e *entry[T]) {
	for i, c := range s.entries {
		if c == e {
			copy(s.entries[i:], s.entries[i+1:])
			s.entries[len(s.entries)-1] = nil
			s.entries = s.entries[:len(s.entries)-1]
			break
		}
	}
	if len(s.entries) == 0 {
		s.teardown()
	}
}

// teardown stops the producer. The generation check in sink drops any
// signal the producer sends afterwards.
func (s *Stream[T]) teardown() {
	if !s.running {
		return
	}
	s.running = false
	stop := s.stop
	s.stop = nil
	if stop != nil {
		stop()
	}
}

func (s *Stream[T]) deliver(v T) {
	if len(s.entries) == 0 {
		return
	}
	entries := make([]*entry[T], len(s.entries))
	copy(entries, s.entries)
	for _, e := range entries {
		if e.sub.done {
			continue
		}
		if e.l.Next != nil {
			e.l.Next(v)
		}
	}
}

func (s *Stream[T]) end(err error) {
	entries := s.entries
	s.entries = nil
	s.teardown()
	for _, e := range entries {
		if e.sub.done {
			continue
		}
		e.sub.done = true
		if err != nil {
			if e.l.Error != nil {
				e.l.Error(err)
			}
		} else if e.l.Complete != nil {
			e.l.Complete()
		}
	}
}

type sink[T any] struct {
	s   *Stream[T]
	gen uint64
}

func (k sink[T]) live() bool {
	return k.s.running && k.s.gen == k.gen
}

func (k sink[T]) Next(v T) {
	if k.live() {
		k.s.deliver(v)
	}
}

func (k sink[T]) Error(err error) {
	if k.live() {
		k.s.end(err)
	}
}

func (k sink[T]) Complete() {
	if k.live() {
		k.s.end(nil)
	}
}

// Subject is a stream fed imperatively through Next, Error and Complete.
// It has no producer; signals reach whoever is subscribed at the time.
type Subject[T any] struct {
	*Stream[T]
}

// NewSubject returns an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{Stream: &Stream[T]{}}
}

// Next delivers v to every current listener.
func (s *Subject[T]) Next(v T) {
	s.deliver(v)
}

// Error delivers err and detaches every current listener.
func (s *Subject[T]) Error(err error) {
	if err == nil {
		return
	}
	s.end(err)
}

// Complete ends every current listener. Later subscribers still receive
// later values.
func (s *Subject[T]) Complete() {
	s.end(nil)
}
