// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gridlib

import (
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

type pos = logicsim.Pos

// Adder is a half adder layout.
//
type Adder struct {
	A, B  logicsim.Pos // input ports
	Sum   int          // XOR gate id
	Carry int          // AND gate id
}

// HalfAdder lays out a half adder. All gates face right and at is the top
// left corner of the layout. Input A covers column at.X and input B column
// at.X+7. Placing a switch on the returned ports drives the adder.
//
//	Function: Sum = lsb(A + B)
//	          Carry = msb(A + B)
//
func HalfAdder(b *Builder, at logicsim.Pos) (Adder, error) {
	x, y := at.X, at.Y
	var a Adder
	var err error
	if a.Sum, err = b.Gate(logicsim.Xor, pos{X: x + 10, Y: y}, logicsim.Right); err != nil {
		return a, errors.Wrap(err, "HalfAdder")
	}
	if a.Carry, err = b.Gate(logicsim.And, pos{X: x + 10, Y: y + 10}, logicsim.Right); err != nil {
		return a, errors.Wrap(err, "HalfAdder")
	}

	nets := [][]logicsim.Pos{
		// A
		{{X: x, Y: y - 1}, {X: x + 5, Y: y - 1}},
		{{X: x, Y: y - 1}, {X: x, Y: y + 9}, {X: x + 5, Y: y + 9}},
		// B
		{{X: x + 7, Y: y + 1}, {X: x + 5, Y: y + 1}},
		{{X: x + 7, Y: y + 1}, {X: x + 7, Y: y + 11}, {X: x + 5, Y: y + 11}},
		// outputs
		{{X: x + 10, Y: y}, {X: x + 15, Y: y}},
		{{X: x + 10, Y: y + 10}, {X: x + 15, Y: y + 10}},
	}
	for _, n := range nets {
		if _, err = b.Wire(n...); err != nil {
			return a, errors.Wrap(err, "HalfAdder")
		}
	}
	a.A = pos{X: x, Y: y + 4}
	a.B = pos{X: x + 7, Y: y + 5}
	return a, nil
}

// ClockLayout is a clock layout.
//
type ClockLayout struct {
	Not int
	Out int // Timer id
}

// Clock lays out an inverter feeding a timer whose output loops back to the
// inverter input. The timer output toggles every delay frames. The inverter
// sits at position at, facing right. delay must be at least 1.
//
func Clock(b *Builder, at logicsim.Pos, delay uint) (ClockLayout, error) {
	var c ClockLayout
	if delay == 0 {
		return c, errors.New("Clock: delay must be at least 1")
	}
	x, y := at.X, at.Y
	var err error
	if c.Not, err = b.Gate(logicsim.Not, at, logicsim.Right); err != nil {
		return c, errors.Wrap(err, "Clock")
	}
	if c.Out, err = b.Timer(pos{X: x + 10, Y: y}, delay, logicsim.Right); err != nil {
		return c, errors.Wrap(err, "Clock")
	}
	if _, err = b.Wire(at, pos{X: x + 5, Y: y}); err != nil {
		return c, errors.Wrap(err, "Clock")
	}
	_, err = b.Wire(pos{X: x + 10, Y: y}, pos{X: x + 10, Y: y + 3}, pos{X: x - 5, Y: y + 3}, pos{X: x - 5, Y: y})
	return c, errors.Wrap(err, "Clock")
}
