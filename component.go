// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pos is a position on the grid. Two pins or wire cells are connected if and
// only if their positions are equal.
//
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Add returns p translated by q.
//
func (p Pos) Add(q Pos) Pos { return Pos{p.X + q.X, p.Y + q.Y} }

// Kind identifies the type of a Component.
//
type Kind int

// Component kinds.
//
const (
	Switch Kind = iota
	And
	Or
	Xor
	Not
	Buffer
	Latch
	Timer
	kindCount
)

var kindNames = [...]string{
	Switch: "Switch",
	And:    "AND",
	Or:     "OR",
	Xor:    "XOR",
	Not:    "NOT",
	Buffer: "Buffer",
	Latch:  "Latch",
	Timer:  "Timer",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsGate returns true for the kinds accepted by Simulation.AddGate.
//
func (k Kind) IsGate() bool {
	switch k {
	case And, Or, Xor, Not, Buffer, Latch:
		return true
	}
	return false
}

// inputCount returns the number of input pins of a component of kind k.
//
func (k Kind) inputCount() int {
	switch k {
	case Switch:
		return 0
	case Not, Buffer, Timer:
		return 1
	}
	return 2
}

// ParseKind returns the Kind named s. Matching is case insensitive.
//
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown component kind %q", s)
}

// Orientation is the direction a component faces.
//
type Orientation int

// Orientations.
//
const (
	Up Orientation = iota
	Right
	Down
	Left
)

var orientationNames = [...]string{"Up", "Right", "Down", "Left"}

func (o Orientation) String() string {
	if !o.valid() {
		return "Orientation(" + strconv.Itoa(int(o)) + ")"
	}
	return orientationNames[o]
}

func (o Orientation) valid() bool { return o >= Up && o <= Left }

// ParseOrientation returns the Orientation named s. Matching is case
// insensitive.
//
func ParseOrientation(s string) (Orientation, error) {
	for o, n := range orientationNames {
		if strings.EqualFold(s, n) {
			return Orientation(o), nil
		}
	}
	return 0, errors.Errorf("unknown orientation %q", s)
}

// input pin offsets relative to the component anchor.
var (
	oneInputPins = [...][1]Pos{
		Up:    {{0, -5}},
		Right: {{-5, 0}},
		Down:  {{0, 5}},
		Left:  {{5, 0}},
	}
	twoInputPins = [...][2]Pos{
		Up:    {{-1, -5}, {1, -5}},
		Right: {{-5, -1}, {-5, 1}},
		Down:  {{-1, 5}, {1, 5}},
		Left:  {{5, 1}, {5, -1}},
	}
)

// Pins returns the output and input pin positions of a component of kind k
// anchored at the given position. The output pin is always the anchor.
//
// For a Latch, in[0] is the enable pin and in[1] the data pin.
//
func Pins(k Kind, at Pos, o Orientation) (out Pos, in []Pos, err error) {
	if k < 0 || k >= kindCount {
		return at, nil, errors.Errorf("unknown component kind %v", k)
	}
	if !o.valid() {
		return at, nil, errors.Errorf("invalid orientation %v", o)
	}
	switch k.inputCount() {
	case 1:
		in = []Pos{at.Add(oneInputPins[o][0])}
	case 2:
		in = []Pos{at.Add(twoInputPins[o][0]), at.Add(twoInputPins[o][1])}
	}
	return at, in, nil
}

// A Component is a switch or a gate. The Kind field selects its behavior.
//
type Component struct {
	Element
	Kind        Kind
	Pos         Pos
	Orientation Orientation
	Out         Pos   // output pin
	In          []Pos // input pins, in pin order

	timer *delayQueue // Timer only
}

func newComponent(id int, k Kind, at Pos, o Orientation) (*Component, error) {
	out, in, err := Pins(k, at, o)
	if err != nil {
		return nil, err
	}
	return &Component{
		Element:     Element{ID: id},
		Kind:        k,
		Pos:         at,
		Orientation: o,
		Out:         out,
		In:          in,
	}, nil
}

// Delay returns the configured delay of a Timer, in frame ticks. It returns 0
// for any other kind.
//
func (c *Component) Delay() uint {
	if c.timer == nil {
		return 0
	}
	return c.timer.delay
}

// Pending returns the number of queued transitions of a Timer.
//
func (c *Component) Pending() int {
	if c.timer == nil {
		return 0
	}
	return len(c.timer.queue)
}
