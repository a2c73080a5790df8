// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "golang.org/x/exp/slices"

// Change is the new state of a wire or component.
//
type Change struct {
	ID    int
	State bool
}

// Frame lists the wires and components whose state differs from the previous
// frame, sorted by id.
//
type Frame struct {
	Wires      []Change
	Components []Change
}

// Empty returns true if nothing changed during the frame.
//
func (f Frame) Empty() bool { return len(f.Wires) == 0 && len(f.Components) == 0 }

// ComputeFrame advances the simulation by one frame and returns what changed.
//
// A frame stabilizes the circuit ticksPerFrame times; each stabilization runs
// at most maxDepth ticks and advances pending timer transitions by one. Only
// the net effect of the frame is reported: an element that changed and then
// reverted within the frame is not listed. Every wire of a changed wire group
// is listed with the group state.
//
func (s *Simulation) ComputeFrame(maxDepth, ticksPerFrame uint) Frame {
	groups := make([]bool, len(s.groups))
	for i, g := range s.groups {
		groups[i] = g.state
	}
	comps := make(map[int]bool, len(s.comps))
	for id, c := range s.comps {
		comps[id] = c.state
	}

	for i := uint(0); i < ticksPerFrame; i++ {
		s.stabilize(maxDepth)
	}

	var f Frame
	var wires []int
	for i, g := range s.groups {
		if g.state != groups[i] {
			wires = append(wires, g.Wires...)
		}
	}
	slices.Sort(wires)
	for _, id := range wires {
		st := s.groups[s.owner[id]].state
		s.wires[id].set(st)
		f.Wires = append(f.Wires, Change{id, st})
	}
	for _, id := range s.ComponentIDs() {
		if st := s.comps[id].state; st != comps[id] {
			f.Components = append(f.Components, Change{id, st})
		}
	}
	return f
}
