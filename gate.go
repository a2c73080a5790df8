// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Next computes the next state of the component from the current state of its
// inputs. It does not modify c.
//
//	AND:    true if at least two inputs are true
//	OR:     true if any input is true
//	XOR:    parity of the inputs
//	NOT:    true if no input is true (an unconnected NOT is true)
//	Buffer: true if any input is true
//	Latch:  if enable (first input) is true, the state of data (second input)
//	Timer:  true if any input is true; this is the level fed to the delay
//	        queue, not the state of the timer output
//	Switch: unchanged
//
func (c *Component) Next(r StateReader) (state, changed bool) {
	switch c.Kind {
	case Switch:
		return c.state, false
	case And:
		n := 0
		for _, in := range c.Inputs {
			if r.Read(in) {
				n++
			}
		}
		state = n >= 2
	case Or, Buffer, Timer:
		state = c.anyInput(r)
	case Xor:
		for _, in := range c.Inputs {
			state = state != r.Read(in)
		}
	case Not:
		state = !c.anyInput(r)
	case Latch:
		state = c.state
		if len(c.Inputs) > 0 && !r.Read(c.Inputs[0]) {
			return state, false
		}
		if len(c.Inputs) > 1 {
			state = r.Read(c.Inputs[1])
		}
	default:
		panic(errors.Errorf("unknown component kind %v", c.Kind))
	}
	return state, state != c.state
}
