// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type update struct {
	c     *Component
	state bool
}

// tick runs one evaluation pass over all wire groups and components and
// reports whether anything changed.
//
// Next states are all computed from the pre-tick states before any of them is
// committed, so the result does not depend on the iteration order. A Timer
// only counts as changed when its delay queue applies a transition.
//
func (s *Simulation) tick() bool {
	changed := false

	gs := make([]bool, len(s.groups))
	for i, g := range s.groups {
		st, ch := g.Next(s)
		gs[i] = st
		changed = changed || ch
	}

	us := make([]update, 0, len(s.comps))
	for _, c := range s.comps {
		if c.Kind == Switch {
			continue
		}
		st, ch := c.Next(s)
		us = append(us, update{c, st})
		if c.Kind != Timer {
			changed = changed || ch
		}
	}

	for i, g := range s.groups {
		g.set(gs[i])
	}
	for _, u := range us {
		switch u.c.Kind {
		case And, Or, Xor, Not, Buffer, Latch:
			u.c.set(u.state)
		case Timer:
			u.c.timer.observe(u.state)
			if u.c.timer.drain(&u.c.Element) {
				changed = true
			}
		default:
			panic(errors.Errorf("no commit rule for component kind %v", u.c.Kind))
		}
	}

	s.ticks++
	return changed
}

// stabilize runs ticks until the circuit settles or maxDepth ticks have been
// run, then advances all timers by one frame tick.
//
// Circuits with feedback loops may never settle; this is reported but not
// treated as an error.
//
func (s *Simulation) stabilize(maxDepth uint) {
	settled := false
	var n uint
	for n < maxDepth {
		n++
		if !s.tick() {
			settled = true
			break
		}
	}

	for _, c := range s.comps {
		if c.timer != nil {
			c.timer.decrement()
		}
	}

	if !settled {
		s.log.Warn("max depth reached before the circuit settled", zap.Uint("max_depth", maxDepth))
	}
}
