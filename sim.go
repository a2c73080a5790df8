// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Simulation is a grid of wires, switches and gates.
//
// Elements are added with the Add* methods, linked together with
// ComputeConnections, then advanced with ComputeFrame. A Simulation must not be
// used concurrently.
//
type Simulation struct {
	id     uuid.UUID
	log    *zap.Logger
	wires  map[int]*Wire
	comps  map[int]*Component
	groups []*WireGroup
	owner  map[int]int // wire id -> group id
	ticks  uint64
}

// An Option configures a Simulation.
//
type Option func(s *Simulation)

// WithLogger sets the logger used for diagnostics. The default logger
// discards everything.
//
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// WithID sets the simulation id reported in log entries. By default, a random
// id is generated.
//
func WithID(id uuid.UUID) Option {
	return func(s *Simulation) { s.id = id }
}

// New returns a new, empty simulation.
//
func New(opts ...Option) *Simulation {
	s := &Simulation{
		id:  uuid.New(),
		log: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With(zap.Stringer("sim", s.id))
	s.Reset()
	return s
}

// ID returns the simulation id.
//
func (s *Simulation) ID() uuid.UUID { return s.id }

// Reset removes all wires, wire groups and components.
//
func (s *Simulation) Reset() {
	s.wires = make(map[int]*Wire)
	s.comps = make(map[int]*Component)
	s.groups = nil
	s.owner = make(map[int]int)
	s.ticks = 0
}

// AddWire adds a wire covering the given grid cells. A wire with the same id is
// replaced. The wire is not connected to anything until the next call to
// ComputeConnections.
//
func (s *Simulation) AddWire(positions []Pos, id int) int {
	s.wires[id] = &Wire{
		Element:   Element{ID: id},
		Positions: append([]Pos(nil), positions...),
	}
	return id
}

// AddGate adds a gate of the given kind. kind must be one of And, Or, Xor, Not,
// Buffer or Latch. A component with the same id is replaced.
//
func (s *Simulation) AddGate(kind Kind, at Pos, o Orientation, id int) (int, error) {
	if !kind.IsGate() {
		return id, errors.Errorf("AddGate: %v is not a gate kind", kind)
	}
	return s.addComponent(kind, at, o, id, nil)
}

// AddTimer adds a timer. Input level changes reach the timer output after delay
// frame ticks (see ComputeFrame). A component with the same id is replaced.
//
func (s *Simulation) AddTimer(at Pos, delay uint, o Orientation, id int) (int, error) {
	return s.addComponent(Timer, at, o, id, &delayQueue{delay: delay})
}

// AddSwitch adds a switch. The switch output pin is at position at. A
// component with the same id is replaced.
//
func (s *Simulation) AddSwitch(at Pos, id int) int {
	// a switch has no orientation dependent pin, newComponent cannot fail.
	c, _ := newComponent(id, Switch, at, Up)
	s.comps[id] = c
	return id
}

func (s *Simulation) addComponent(k Kind, at Pos, o Orientation, id int, q *delayQueue) (int, error) {
	c, err := newComponent(id, k, at, o)
	if err != nil {
		return id, errors.Wrapf(err, "add %v %d", k, id)
	}
	c.timer = q
	s.comps[id] = c
	return id, nil
}

// UpdateSwitchState sets the state of switch id. The change propagates on the
// next frame. Unknown ids and components that are not switches are ignored.
//
func (s *Simulation) UpdateSwitchState(id int, state bool) {
	c := s.comps[id]
	if c == nil {
		s.log.Warn("switch not found", zap.Int("id", id))
		return
	}
	if c.Kind != Switch {
		s.log.Warn("component is not a switch", zap.Int("id", id), zap.Stringer("kind", c.Kind))
		return
	}
	c.set(state)
}

// Read returns the state of the element r refers to, or false if there is no
// such element.
//
func (s *Simulation) Read(r Ref) bool {
	if r.IsWireGroup() {
		if r.ID < 0 || r.ID >= len(s.groups) {
			return false
		}
		return s.groups[r.ID].state
	}
	if c := s.comps[r.ID]; c != nil {
		return c.state
	}
	return false
}

// Component returns the component with the given id.
//
func (s *Simulation) Component(id int) (*Component, bool) {
	c, ok := s.comps[id]
	return c, ok
}

// Wire returns the wire with the given id.
//
func (s *Simulation) Wire(id int) (*Wire, bool) {
	w, ok := s.wires[id]
	return w, ok
}

// WireGroup returns the wire group with the given id. Group ids are assigned
// by ComputeConnections.
//
func (s *Simulation) WireGroup(id int) (*WireGroup, bool) {
	if id < 0 || id >= len(s.groups) {
		return nil, false
	}
	return s.groups[id], true
}

// GroupOf returns the id of the wire group wire id belongs to.
//
func (s *Simulation) GroupOf(wire int) (int, bool) {
	g, ok := s.owner[wire]
	return g, ok
}

// WireGroupCount returns the number of wire groups.
//
func (s *Simulation) WireGroupCount() int { return len(s.groups) }

// ComponentIDs returns the ids of all components in ascending order.
//
func (s *Simulation) ComponentIDs() []int { return sortedKeys(s.comps) }

// WireIDs returns the ids of all wires in ascending order.
//
func (s *Simulation) WireIDs() []int { return sortedKeys(s.wires) }

// Ticks returns the number of ticks run since the simulation was created or
// reset.
//
func (s *Simulation) Ticks() uint64 { return s.ticks }

func sortedKeys[V any](m map[int]V) []int {
	ks := maps.Keys(m)
	slices.Sort(ks)
	return ks
}
