/*
Package logicsim simulates switches, logic gates and wires laid out on a grid.

Wires are lists of grid cells. Wires sharing a cell form a wire group, which
behaves as a single electrical node driven by the components whose output pin
sits on one of its cells. Component pins are fixed offsets from the component
anchor, depending on its orientation.

A simulation is built in three steps: add wires and components, call
ComputeConnections, then call ComputeFrame repeatedly. Each frame runs the
circuit until it settles and returns the wires and components whose state
changed, so that a renderer only has to redraw these.

Evaluation is two-phase: every element computes its next state from the
states at the start of the tick, then all states are committed at once. The
result does not depend on the order in which elements are visited.
*/
package logicsim
