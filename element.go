// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strconv"

type refKind uint8

const (
	refWireGroup refKind = iota
	refComponent
)

// A Ref is a weak reference to a wire group or a component. It is resolved by
// id at read time; a Ref to an element that does not exist reads false.
//
type Ref struct {
	kind refKind
	ID   int
}

// WireGroupRef returns a Ref to the wire group with the given id.
//
func WireGroupRef(id int) Ref { return Ref{refWireGroup, id} }

// ComponentRef returns a Ref to the component with the given id.
//
func ComponentRef(id int) Ref { return Ref{refComponent, id} }

// IsWireGroup returns true if r refers to a wire group.
//
func (r Ref) IsWireGroup() bool { return r.kind == refWireGroup }

// IsComponent returns true if r refers to a component.
//
func (r Ref) IsComponent() bool { return r.kind == refComponent }

func (r Ref) String() string {
	if r.IsWireGroup() {
		return "group:" + strconv.Itoa(r.ID)
	}
	return "component:" + strconv.Itoa(r.ID)
}

// A StateReader resolves references to element states.
//
type StateReader interface {
	Read(r Ref) bool
}

// Element holds the attributes shared by wires, wire groups and components.
//
type Element struct {
	ID      int
	Inputs  []Ref
	Outputs []Ref
	state   bool
}

// State returns the element's state.
//
func (e *Element) State() bool { return e.state }

// set sets the element state and reports whether it changed.
func (e *Element) set(s bool) bool {
	if e.state == s {
		return false
	}
	e.state = s
	return true
}

func (e *Element) unlink() {
	e.Inputs = nil
	e.Outputs = nil
}

// anyInput returns true if any of the element's inputs reads true.
func (e *Element) anyInput(r StateReader) bool {
	for _, in := range e.Inputs {
		if r.Read(in) {
			return true
		}
	}
	return false
}

// Wire is a wire segment given by the grid cells it covers.
//
type Wire struct {
	Element
	Positions []Pos
}

// WireGroup is a set of wires connected through shared positions. It behaves
// as a single electrical node.
//
type WireGroup struct {
	Element
	Positions []Pos // union of member positions
	Wires     []int // member wire ids, ascending
}

// Next returns the next state of the group: true if any of its drivers is
// true.
//
func (g *WireGroup) Next(r StateReader) (state, changed bool) {
	state = g.anyInput(r)
	return state, state != g.state
}
