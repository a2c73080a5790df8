// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gridlib provides a layout builder and a library of reusable circuit
// layouts for logicsim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package gridlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// A Builder adds elements to a Simulation and allocates their ids.
//
// Wire and component ids are allocated in ascending order, starting after the
// highest id already present in the simulation.
//
type Builder struct {
	Sim *logicsim.Simulation

	wire int
	comp int
}

// NewBuilder returns a new Builder for s.
//
func NewBuilder(s *logicsim.Simulation) *Builder {
	b := &Builder{Sim: s}
	if ids := s.WireIDs(); len(ids) > 0 {
		b.wire = ids[len(ids)-1]
	}
	if ids := s.ComponentIDs(); len(ids) > 0 {
		b.comp = ids[len(ids)-1]
	}
	return b
}

func (b *Builder) nextComponent() int {
	b.comp++
	return b.comp
}

// Switch adds a switch with its output pin at position at.
//
func (b *Builder) Switch(at logicsim.Pos) int {
	return b.Sim.AddSwitch(at, b.nextComponent())
}

// Gate adds a gate of kind k.
//
func (b *Builder) Gate(k logicsim.Kind, at logicsim.Pos, o logicsim.Orientation) (int, error) {
	return b.Sim.AddGate(k, at, o, b.nextComponent())
}

// Timer adds a timer with the given delay.
//
func (b *Builder) Timer(at logicsim.Pos, delay uint, o logicsim.Orientation) (int, error) {
	return b.Sim.AddTimer(at, delay, o, b.nextComponent())
}

// Wire adds a wire following path. Consecutive vertices are joined by every
// grid cell in between. If two vertices are not on the same row or column, the
// wire runs horizontally first.
//
func (b *Builder) Wire(path ...logicsim.Pos) (int, error) {
	if len(path) == 0 {
		return 0, errors.New("Wire: empty path")
	}
	cells := []logicsim.Pos{path[0]}
	for _, to := range path[1:] {
		cells = route(cells, to)
	}
	b.wire++
	return b.Sim.AddWire(cells, b.wire), nil
}

// route appends the cells from the last cell of cells to the cell at.
func route(cells []logicsim.Pos, to logicsim.Pos) []logicsim.Pos {
	p := cells[len(cells)-1]
	for p.X != to.X {
		p.X += sign(to.X - p.X)
		cells = append(cells, p)
	}
	for p.Y != to.Y {
		p.Y += sign(to.Y - p.Y)
		cells = append(cells, p)
	}
	return cells
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
