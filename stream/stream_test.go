package stream

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// recorder captures every signal a stream delivers.
type recorder[T any] struct {
	values    []T
	err       error
	completed bool
}

func record[T any](s *Stream[T]) (*recorder[T], *Subscription) {
	r := &recorder[T]{}
	sub := s.Subscribe(Listener[T]{
		Next:     func(v T) { r.values = append(r.values, v) },
		Error:    func(err error) { r.err = err },
		Complete: func() { r.completed = true },
	})
	return r, sub
}

func TestOfEmitsAndCompletes(t *testing.T) {
	r, _ := record(Of(1, 2, 3))
	if !reflect.DeepEqual(r.values, []int{1, 2, 3}) {
		t.Errorf("values = %v, want [1 2 3]", r.values)
	}
	if !r.completed {
		t.Error("expected completion")
	}
}

func TestSubjectMulticastsInOrder(t *testing.T) {
	s := NewSubject[string]()
	var order []string
	s.Subscribe(Listener[string]{Next: func(v string) { order = append(order, "a:"+v) }})
	s.Subscribe(Listener[string]{Next: func(v string) { order = append(order, "b:"+v) }})

	s.Next("x")
	s.Next("y")

	want := []string{"a:x", "b:x", "a:y", "b:y"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestLazyProducerStartsOnceAndStops(t *testing.T) {
	starts, stops := 0, 0
	src := NewSubject[int]()
	s := Create(func(em Emitter[int]) func() {
		starts++
		sub := src.Subscribe(Listener[int]{Next: em.Next})
		return func() {
			stops++
			sub.Unsubscribe()
		}
	})

	_, sub1 := record(s)
	_, sub2 := record(s)
	if starts != 1 {
		t.Fatalf("starts = %d, want 1", starts)
	}
	if src.Listeners() != 1 {
		t.Fatalf("upstream listeners = %d, want 1", src.Listeners())
	}

	sub1.Unsubscribe()
	if stops != 0 {
		t.Fatal("producer stopped while a listener remained")
	}
	sub2.Unsubscribe()
	if stops != 1 {
		t.Errorf("stops = %d, want 1", stops)
	}
	if src.Listeners() != 0 {
		t.Errorf("upstream listeners = %d, want 0", src.Listeners())
	}
}

func TestMapFilter(t *testing.T) {
	src := NewSubject[int]()
	doubledEven := Map(Filter(src.Stream, func(v int) bool { return v%2 == 0 }), func(v int) int { return v * 2 })
	r, _ := record(doubledEven)

	for i := 1; i <= 5; i++ {
		src.Next(i)
	}
	if !reflect.DeepEqual(r.values, []int{4, 8}) {
		t.Errorf("values = %v, want [4 8]", r.values)
	}
}

func TestTakeUnsubscribesUpstream(t *testing.T) {
	src := NewSubject[int]()
	r, _ := record(Take(src.Stream, 2))

	src.Next(1)
	src.Next(2)
	src.Next(3)

	if !reflect.DeepEqual(r.values, []int{1, 2}) {
		t.Errorf("values = %v, want [1 2]", r.values)
	}
	if !r.completed {
		t.Error("expected completion after 2 values")
	}
	if src.Listeners() != 0 {
		t.Errorf("upstream listeners = %d, want 0", src.Listeners())
	}
}

func TestTakeSynchronousSource(t *testing.T) {
	r, _ := record(Take(Of(1, 2, 3), 1))
	if !reflect.DeepEqual(r.values, []int{1}) || !r.completed {
		t.Errorf("got %v completed=%v", r.values, r.completed)
	}
}

func TestDrop(t *testing.T) {
	r, _ := record(Drop(Of(1, 2, 3), 1))
	if !reflect.DeepEqual(r.values, []int{2, 3}) {
		t.Errorf("values = %v, want [2 3]", r.values)
	}
}

func TestEndWhen(t *testing.T) {
	src := NewSubject[int]()
	end := NewSubject[struct{}]()
	r, _ := record(EndWhen(src.Stream, end.Stream))

	src.Next(1)
	end.Next(struct{}{})
	src.Next(2)

	if !reflect.DeepEqual(r.values, []int{1}) || !r.completed {
		t.Errorf("got %v completed=%v", r.values, r.completed)
	}
	if src.Listeners() != 0 || end.Listeners() != 0 {
		t.Errorf("listeners left: src=%d end=%d", src.Listeners(), end.Listeners())
	}
}

func TestMergeCompletesAfterAll(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	r, _ := record(Merge(a.Stream, b.Stream))

	a.Next(1)
	b.Next(2)
	a.Complete()
	if r.completed {
		t.Fatal("merge completed before every input")
	}
	b.Next(3)
	b.Complete()

	if !reflect.DeepEqual(r.values, []int{1, 2, 3}) || !r.completed {
		t.Errorf("got %v completed=%v", r.values, r.completed)
	}
}

func TestSampleCombine(t *testing.T) {
	events := NewSubject[int]()
	state := NewSubject[string]()
	r, _ := record(SampleCombine(events.Stream, state.Stream))

	events.Next(0) // no state yet
	state.Next("a")
	events.Next(1)
	state.Next("b")
	state.Next("c")
	events.Next(2)

	want := []Pair[int, string]{{1, "a"}, {2, "c"}}
	if !reflect.DeepEqual(r.values, want) {
		t.Errorf("values = %v, want %v", r.values, want)
	}
}

func TestCombine(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[string]()
	r, _ := record(Combine(a.Stream, b.Stream))

	a.Next(1)
	b.Next("x")
	a.Next(2)

	want := []Pair[int, string]{{1, "x"}, {2, "x"}}
	if !reflect.DeepEqual(r.values, want) {
		t.Errorf("values = %v, want %v", r.values, want)
	}
}

func TestFlattenSwitches(t *testing.T) {
	outer := NewSubject[*Stream[int]]()
	first := NewSubject[int]()
	second := NewSubject[int]()
	r, _ := record(Flatten(outer.Stream))

	outer.Next(first.Stream)
	first.Next(1)
	outer.Next(second.Stream)
	first.Next(2)
	second.Next(3)

	if !reflect.DeepEqual(r.values, []int{1, 3}) {
		t.Errorf("values = %v, want [1 3]", r.values)
	}
	if first.Listeners() != 0 {
		t.Error("previous inner stream still subscribed")
	}
}

func TestFlattenCompletesWithEmptyInner(t *testing.T) {
	outer := NewSubject[*Stream[int]]()
	r, _ := record(Flatten(outer.Stream))
	outer.Next(Empty[int]())
	outer.Complete()
	if !r.completed {
		t.Error("expected completion")
	}
}

func TestFlattenConcurrently(t *testing.T) {
	outer := NewSubject[*Stream[int]]()
	first := NewSubject[int]()
	second := NewSubject[int]()
	r, _ := record(FlattenConcurrently(outer.Stream))

	outer.Next(first.Stream)
	outer.Next(second.Stream)
	first.Next(1)
	second.Next(2)
	first.Next(3)

	if !reflect.DeepEqual(r.values, []int{1, 2, 3}) {
		t.Errorf("values = %v, want [1 2 3]", r.values)
	}
}

func TestErrorPropagatesThroughOperators(t *testing.T) {
	boom := errors.New("boom")
	src := NewSubject[int]()
	r, _ := record(Map(Filter(src.Stream, func(int) bool { return true }), func(v int) int { return v }))

	src.Error(boom)
	if !errors.Is(r.err, boom) {
		t.Errorf("err = %v, want %v", r.err, boom)
	}
	if src.Listeners() != 0 {
		t.Error("upstream still subscribed after error")
	}
}

func TestStartWith(t *testing.T) {
	r, _ := record(StartWith(Of(2, 3), 1))
	if !reflect.DeepEqual(r.values, []int{1, 2, 3}) {
		t.Errorf("values = %v, want [1 2 3]", r.values)
	}
}

func TestManualClockAfter(t *testing.T) {
	var c ManualClock
	r, _ := record(c.After(250 * time.Millisecond))

	c.Advance(100 * time.Millisecond)
	if len(r.values) != 0 {
		t.Fatal("timer fired early")
	}
	c.Advance(200 * time.Millisecond)
	if !reflect.DeepEqual(r.values, []time.Duration{250 * time.Millisecond}) || !r.completed {
		t.Errorf("got %v completed=%v", r.values, r.completed)
	}
	if c.Pending() != 0 {
		t.Errorf("pending = %d, want 0", c.Pending())
	}
}

func TestManualClockCancelOnUnsubscribe(t *testing.T) {
	var c ManualClock
	_, sub := record(c.After(time.Second))
	if c.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", c.Pending())
	}
	sub.Unsubscribe()
	if c.Pending() != 0 {
		t.Errorf("pending = %d, want 0", c.Pending())
	}
}

func TestFlattenKeepsRepeatedInner(t *testing.T) {
	starts := 0
	src := NewSubject[int]()
	inner := Create(func(em Emitter[int]) func() {
		starts++
		sub := src.Subscribe(Listener[int]{Next: em.Next})
		return sub.Unsubscribe
	})
	outer := NewSubject[*Stream[int]]()
	r, _ := record(Flatten(outer.Stream))

	outer.Next(inner)
	src.Next(1)
	outer.Next(inner)
	src.Next(2)

	if starts != 1 {
		t.Errorf("inner started %d times, want 1", starts)
	}
	if !reflect.DeepEqual(r.values, []int{1, 2}) {
		t.Errorf("values = %v, want [1 2]", r.values)
	}
}

func TestFlattenResubscribesEndedInner(t *testing.T) {
	var c ManualClock
	src := NewSubject[int]()
	window := EndWhen(src.Stream, c.After(time.Second))
	outer := NewSubject[*Stream[int]]()
	r, _ := record(Flatten(outer.Stream))

	outer.Next(window)
	src.Next(1)
	c.Advance(2 * time.Second)
	src.Next(2)
	outer.Next(window)
	src.Next(3)

	if !reflect.DeepEqual(r.values, []int{1, 3}) {
		t.Errorf("values = %v, want [1 3]", r.values)
	}
	if r.completed {
		t.Error("completed while the outer stream is still open")
	}
}
