// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"testing"

	"github.com/db47h/logicsim"
)

// MaxDepth is the tick limit per stabilization used by the helpers in this
// package.
//
const MaxDepth = 100

// Idle returns true if no timer in s has pending transitions.
//
func Idle(s *logicsim.Simulation) bool {
	for _, id := range s.ComponentIDs() {
		if c, _ := s.Component(id); c.Pending() > 0 {
			return false
		}
	}
	return true
}

// Settle computes frames with one stabilization each until a frame reports no
// change and no timer has pending transitions, or until max frames have been
// computed. It returns the number of frames computed and whether the circuit
// settled.
//
func Settle(s *logicsim.Simulation, max int) (int, bool) {
	for i := 1; i <= max; i++ {
		if s.ComputeFrame(MaxDepth, 1).Empty() && Idle(s) {
			return i, true
		}
	}
	return max, false
}

// TruthTable drives switches ins through every combination of values and
// checks the state of component out against want after the circuit settles.
// The first switch is the most significant bit of the index in want:
//
//	TruthTable(t, s, []int{a, b}, and, []bool{false, false, false, true})
//
func TruthTable(t *testing.T, s *logicsim.Simulation, ins []int, out int, want []bool) {
	t.Helper()

	if len(want) != 1<<uint(len(ins)) {
		t.Fatalf("len(want) = %d, expected %d values for %d inputs", len(want), 1<<uint(len(ins)), len(ins))
	}
	c, ok := s.Component(out)
	if !ok {
		t.Fatalf("component %d not found", out)
	}

	vals := make([]bool, len(ins))
	for i := range want {
		for bit := range ins {
			n := len(ins) - bit - 1
			vals[n] = i&(1<<uint(bit)) != 0
			s.UpdateSwitchState(ins[n], vals[n])
		}
		if _, ok := Settle(s, 64); !ok {
			t.Fatalf("%v %v: circuit did not settle", c.Kind, vals)
		}
		if got := c.State(); got != want[i] {
			t.Errorf("%v %v = %v, got %v", c.Kind, vals, want[i], got)
		}
	}
}
