package stream

// upstream collects the subscriptions an operator holds on its inputs.
// A subscription added after stop is released immediately, which covers
// inputs that end the operator synchronously from inside Subscribe.
type upstream struct {
	subs    []*Subscription
	stopped bool
}

func (u *upstream) add(sub *Subscription) {
	if u.stopped {
		sub.Unsubscribe()
		return
	}
	u.subs = append(u.subs, sub)
}

func (u *upstream) stop() {
	u.stopped = true
	subs := u.subs
	u.subs = nil
	for _, s := range subs {
		s.Unsubscribe()
	}
}

// Pair holds one value from each of two streams.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Empty completes as soon as it is subscribed.
func Empty[T any]() *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		em.Complete()
		return nil
	})
}

// Never neither emits nor ends.
func Never[T any]() *Stream[T] {
	return Create(func(Emitter[T]) func() { return nil })
}

// Throw fails with err as soon as it is subscribed.
func Throw[T any](err error) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		em.Error(err)
		return nil
	})
}

// Of emits vs in order and completes.
func Of[T any](vs ...T) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		for _, v := range vs {
			em.Next(v)
		}
		em.Complete()
		return nil
	})
}

// Map applies f to every value.
func Map[T, U any](s *Stream[T], f func(T) U) *Stream[U] {
	return Create(func(em Emitter[U]) func() {
		u := &upstream{}
		u.add(s.Subscribe(Listener[T]{
			Next:     func(v T) { em.Next(f(v)) },
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// MapTo replaces every value with v.
func MapTo[T, U any](s *Stream[T], v U) *Stream[U] {
	return Map(s, func(T) U { return v })
}

// Filter passes values for which keep returns true.
func Filter[T any](s *Stream[T], keep func(T) bool) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		u := &upstream{}
		u.add(s.Subscribe(Listener[T]{
			Next: func(v T) {
				if keep(v) {
					em.Next(v)
				}
			},
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// Take emits the first n values and then completes.
func Take[T any](s *Stream[T], n int) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		if n <= 0 {
			em.Complete()
			return nil
		}
		count := 0
		u := &upstream{}
		u.add(s.Subscribe(Listener[T]{
			Next: func(v T) {
				if count >= n {
					return
				}
				count++
				em.Next(v)
				if count == n {
					em.Complete()
				}
			},
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// Drop skips the first n values.
func Drop[T any](s *Stream[T], n int) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		seen := 0
		u := &upstream{}
		u.add(s.Subscribe(Listener[T]{
			Next: func(v T) {
				if seen < n {
					seen++
					return
				}
				em.Next(v)
			},
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// StartWith emits v before anything from s.
func StartWith[T any](s *Stream[T], v T) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		em.Next(v)
		u := &upstream{}
		u.add(s.Subscribe(Listener[T]{
			Next:     em.Next,
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// EndWhen mirrors s until end emits or completes, then completes.
func EndWhen[T, E any](s *Stream[T], end *Stream[E]) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		u := &upstream{}
		u.add(end.Subscribe(Listener[E]{
			Next:     func(E) { em.Complete() },
			Error:    em.Error,
			Complete: em.Complete,
		}))
		u.add(s.Subscribe(Listener[T]{
			Next:     em.Next,
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// Merge interleaves every input and completes once all of them have.
func Merge[T any](ss ...*Stream[T]) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		if len(ss) == 0 {
			em.Complete()
			return nil
		}
		remaining := len(ss)
		u := &upstream{}
		for _, s := range ss {
			u.add(s.Subscribe(Listener[T]{
				Next:  em.Next,
				Error: em.Error,
				Complete: func() {
					remaining--
					if remaining == 0 {
						em.Complete()
					}
				},
			}))
		}
		return u.stop
	})
}

// Combine emits the latest pair whenever either input emits, once both
// have emitted at least once. It completes when both inputs have.
func Combine[A, B any](a *Stream[A], b *Stream[B]) *Stream[Pair[A, B]] {
	return Create(func(em Emitter[Pair[A, B]]) func() {
		var (
			last         Pair[A, B]
			hasA, hasB   bool
			doneA, doneB bool
		)
		emit := func() {
			if hasA && hasB {
				em.Next(last)
			}
		}
		u := &upstream{}
		u.add(a.Subscribe(Listener[A]{
			Next: func(v A) {
				last.First, hasA = v, true
				emit()
			},
			Error: em.Error,
			Complete: func() {
				doneA = true
				if doneB {
					em.Complete()
				}
			},
		}))
		u.add(b.Subscribe(Listener[B]{
			Next: func(v B) {
				last.Second, hasB = v, true
				emit()
			},
			Error: em.Error,
			Complete: func() {
				doneB = true
				if doneA {
					em.Complete()
				}
			},
		}))
		return u.stop
	})
}

// SampleCombine emits, for every value of s, that value paired with the
// latest value of other. Values of s that arrive before other has emitted
// are dropped. The result ends with s.
func SampleCombine[T, U any](s *Stream[T], other *Stream[U]) *Stream[Pair[T, U]] {
	return Create(func(em Emitter[Pair[T, U]]) func() {
		var (
			latest U
			has    bool
		)
		u := &upstream{}
		u.add(other.Subscribe(Listener[U]{
			Next: func(v U) {
				latest, has = v, true
			},
			Error: em.Error,
		}))
		u.add(s.Subscribe(Listener[T]{
			Next: func(v T) {
				if has {
					em.Next(Pair[T, U]{First: v, Second: latest})
				}
			},
			Error:    em.Error,
			Complete: em.Complete,
		}))
		return u.stop
	})
}

// Flatten follows the most recent inner stream, dropping the previous one
// when a new one arrives. If the outer stream re-emits the inner stream it
// is already following, the existing subscription is kept. It completes
// when the outer stream and the current inner stream have both completed.
func Flatten[T any](ss *Stream[*Stream[T]]) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		var (
			inner     *Subscription
			cur       *Stream[T]
			token     int
			outerDone bool
			innerLive bool
		)
		u := &upstream{}
		u.add(ss.Subscribe(Listener[*Stream[T]]{
			Next: func(s *Stream[T]) {
				if s == cur && !inner.Closed() {
					return
				}
				inner.Unsubscribe()
				inner = nil
				cur = s
				token++
				mine := token
				innerLive = true
				sub := s.Subscribe(Listener[T]{
					Next:  em.Next,
					Error: em.Error,
					Complete: func() {
						if mine == token {
							innerLive = false
							inner = nil
						}
						if outerDone && !innerLive {
							em.Complete()
						}
					},
				})
				if mine == token && !sub.Closed() {
					inner = sub
				}
			},
			Error: em.Error,
			Complete: func() {
				outerDone = true
				if !innerLive {
					em.Complete()
				}
			},
		}))
		return func() {
			inner.Unsubscribe()
			u.stop()
		}
	})
}

// FlattenConcurrently follows every inner stream at once. It completes
// when the outer stream and every inner stream have completed.
func FlattenConcurrently[T any](ss *Stream[*Stream[T]]) *Stream[T] {
	return Create(func(em Emitter[T]) func() {
		var (
			outerDone bool
			live      int
			inners    []*Subscription
		)
		u := &upstream{}
		u.add(ss.Subscribe(Listener[*Stream[T]]{
			Next: func(s *Stream[T]) {
				live++
				sub := s.Subscribe(Listener[T]{
					Next:  em.Next,
					Error: em.Error,
					Complete: func() {
						live--
						if outerDone && live == 0 {
							em.Complete()
						}
					},
				})
				kept := inners[:0]
				for _, in := range inners {
					if !in.Closed() {
						kept = append(kept, in)
					}
				}
				inners = kept
				if !sub.Closed() {
					inners = append(inners, sub)
				}
			},
			Error: em.Error,
			Complete: func() {
				outerDone = true
				if live == 0 {
					em.Complete()
				}
			},
		}))
		return func() {
			for _, sub := range inners {
				sub.Unsubscribe()
			}
			inners = nil
			u.stop()
		}
	})
}
