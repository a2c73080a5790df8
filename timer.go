// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

type transition struct {
	remaining uint
	level     bool
}

// delayQueue holds the pending output transitions of a Timer. A change of the
// input level is queued with the configured delay and only reaches the output
// once its counter has been decremented to zero. Counters are decremented once
// per stabilization, not once per tick.
//
type delayQueue struct {
	delay uint
	input bool // last observed input level
	queue []transition
}

// observe records the input level. A level change queues a new transition.
func (q *delayQueue) observe(level bool) {
	if level == q.input {
		return
	}
	q.input = level
	q.queue = append(q.queue, transition{q.delay, level})
}

// drain removes due transitions in queue order and applies them to e. The
// last one wins. It reports whether any transition was applied, even if the
// state of e did not change.
func (q *delayQueue) drain(e *Element) bool {
	applied := false
	n := 0
	for _, t := range q.queue {
		if t.remaining == 0 {
			e.set(t.level)
			applied = true
			continue
		}
		q.queue[n] = t
		n++
	}
	q.queue = q.queue[:n]
	return applied
}

func (q *delayQueue) decrement() {
	for i := range q.queue {
		if q.queue[i].remaining > 0 {
			q.queue[i].remaining--
		}
	}
}
