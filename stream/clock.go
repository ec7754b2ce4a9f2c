package stream

import (
	"sort"
	"time"
)

// Clock creates timer streams. Timed operators take a Clock instead of
// reading wall time so that a host loop (or a test) decides when time
// passes.
type Clock interface {
	// After returns a stream that emits the elapsed duration once, d after
	// it was subscribed, and then completes.
	After(d time.Duration) *Stream[time.Duration]
}

type timer struct {
	at    time.Duration
	start time.Duration
	seq   uint64
	fire  func(elapsed time.Duration)
}

// ManualClock is a Clock that only moves when Advance is called.
// The zero value is ready to use.
type ManualClock struct {
	now    time.Duration
	seq    uint64
	timers []*timer
}

// Now returns the total time advanced so far.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of armed timers.
func (c *ManualClock) Pending() int {
	return len(c.timers)
}

// After implements Clock.
func (c *ManualClock) After(d time.Duration) *Stream[time.Duration] {
	return Create(func(em Emitter[time.Duration]) func() {
		c.seq++
		t := &timer{at: c.now + d, start: c.now, seq: c.seq}
		t.fire = func(elapsed time.Duration) {
			em.Next(elapsed)
			em.Complete()
		}
		c.timers = append(c.timers, t)
		return func() { c.cancel(t) }
	})
}

// Advance moves the clock forward by dt and fires every timer that came
// due, earliest first. Timers armed while firing are honored in the same
// call if they are already due.
func (c *ManualClock) Advance(dt time.Duration) {
	target := c.now + dt
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.cancel(t)
		c.now = t.at
		t.fire(t.at - t.start)
	}
	c.now = target
}

func (c *ManualClock) nextDue(target time.Duration) *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at == c.timers[j].at {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at < c.timers[j].at
	})
	if c.timers[0].at > target {
		return nil
	}
	return c.timers[0]
}

func (c *ManualClock) cancel(t *timer) {
	for i, x := range c.timers {
		if x == t {
			copy(c.timers[i:], c.timers[i+1:])
			c.timers[len(c.timers)-1] = nil
			c.timers = c.timers[:len(c.timers)-1]
			return
		}
	}
}
