package logicsim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	ls "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
)

const maxDepth = simtest.MaxDepth

// newObserved returns a simulation logging to an in-memory core.
func newObserved() (*ls.Simulation, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return ls.New(ls.WithLogger(zap.New(core))), logs
}

// twoInputs builds a two input gate 10 at (20, 10) facing right, fed by
// switches 1 and 2. The gate output drives wire 3.
func twoInputs(t *testing.T, k ls.Kind) *ls.Simulation {
	t.Helper()
	s := ls.New()
	s.AddSwitch(ls.Pos{X: 0, Y: 9}, 1)
	s.AddSwitch(ls.Pos{X: 0, Y: 11}, 2)
	s.AddWire([]ls.Pos{{0, 9}, {15, 9}}, 1)
	s.AddWire([]ls.Pos{{0, 11}, {15, 11}}, 2)
	if _, err := s.AddGate(k, ls.Pos{X: 20, Y: 10}, ls.Right, 10); err != nil {
		t.Fatal(err)
	}
	s.AddWire([]ls.Pos{{20, 10}, {25, 10}}, 3)
	s.ComputeConnections()
	return s
}

// oneInput builds a single input gate 10 at (20, 10) facing right, fed by
// switch 1.
func oneInput(t *testing.T, k ls.Kind) *ls.Simulation {
	t.Helper()
	s := ls.New()
	s.AddSwitch(ls.Pos{X: 0, Y: 10}, 1)
	s.AddWire([]ls.Pos{{0, 10}, {15, 10}}, 1)
	if _, err := s.AddGate(k, ls.Pos{X: 20, Y: 10}, ls.Right, 10); err != nil {
		t.Fatal(err)
	}
	s.AddWire([]ls.Pos{{20, 10}, {25, 10}}, 2)
	s.ComputeConnections()
	return s
}

func TestSimulation_gates(t *testing.T) {
	td := []struct {
		name   string
		kind   ls.Kind
		result []bool
	}{
		{"AND", ls.And, []bool{false, false, false, true}},
		{"OR", ls.Or, []bool{false, true, true, true}},
		{"XOR", ls.Xor, []bool{false, true, true, false}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			simtest.TruthTable(t, twoInputs(t, d.kind), []int{1, 2}, 10, d.result)
		})
	}
	t.Run("NOT", func(t *testing.T) {
		simtest.TruthTable(t, oneInput(t, ls.Not), []int{1}, 10, []bool{true, false})
	})
	t.Run("Buffer", func(t *testing.T) {
		simtest.TruthTable(t, oneInput(t, ls.Buffer), []int{1}, 10, []bool{false, true})
	})
}

func TestSimulation_not_unconnected(t *testing.T) {
	s := ls.New()
	if _, err := s.AddGate(ls.Not, ls.Pos{X: 0, Y: 0}, ls.Up, 7); err != nil {
		t.Fatal(err)
	}
	s.ComputeConnections()
	f := s.ComputeFrame(maxDepth, 1)
	exp := ls.Frame{Components: []ls.Change{{ID: 7, State: true}}}
	if !cmp.Equal(f, exp) {
		t.Errorf("frame diff: %s", cmp.Diff(f, exp))
	}
}

func TestSimulation_output_wires(t *testing.T) {
	s := twoInputs(t, ls.And)
	s.UpdateSwitchState(1, true)
	s.UpdateSwitchState(2, true)
	f := s.ComputeFrame(maxDepth, 1)
	// switch states are set before the frame starts and are not reported.
	exp := ls.Frame{
		Wires:      []ls.Change{{1, true}, {2, true}, {3, true}},
		Components: []ls.Change{{10, true}},
	}
	if !cmp.Equal(f, exp) {
		t.Fatalf("frame diff: %s", cmp.Diff(f, exp))
	}
	if w, _ := s.Wire(3); !w.State() {
		t.Error("wire 3 state not updated")
	}
}

func TestSimulation_latch(t *testing.T) {
	// switch 1 is enable, switch 2 data.
	s := twoInputs(t, ls.Latch)
	l, _ := s.Component(10)

	check := func(en, data, exp bool) {
		t.Helper()
		s.UpdateSwitchState(1, en)
		s.UpdateSwitchState(2, data)
		simtest.Settle(s, 8)
		if l.State() != exp {
			t.Fatalf("enable=%v data=%v: latch = %v, expected %v", en, data, l.State(), exp)
		}
	}

	check(false, false, false)
	check(false, true, false)
	check(true, true, true)
	check(true, false, false)
	check(true, true, true)
	check(false, false, true)
	check(false, true, true)
	check(false, false, true)
}

// timerCircuit builds switch 1 driving timer 10 through wire 1. The timer
// output drives wire 2.
func timerCircuit(t *testing.T, delay uint) *ls.Simulation {
	t.Helper()
	s := ls.New()
	s.AddSwitch(ls.Pos{X: 0, Y: 0}, 1)
	s.AddWire([]ls.Pos{{0, 0}, {5, 0}}, 1)
	if _, err := s.AddTimer(ls.Pos{X: 10, Y: 0}, delay, ls.Right, 10); err != nil {
		t.Fatal(err)
	}
	s.AddWire([]ls.Pos{{10, 0}, {15, 0}}, 2)
	s.ComputeConnections()
	return s
}

func TestSimulation_timer(t *testing.T) {
	s := timerCircuit(t, 3)
	tm, _ := s.Component(10)
	if f := s.ComputeFrame(maxDepth, 1); !f.Empty() {
		t.Fatalf("idle frame reported changes: %+v", f)
	}

	// the input change reaches the timer within the frame; the output is
	// held for three more frames.
	s.UpdateSwitchState(1, true)
	f := s.ComputeFrame(maxDepth, 1)
	if !cmp.Equal(f.Wires, []ls.Change{{1, true}}) {
		t.Fatalf("wires diff: %s", cmp.Diff(f.Wires, []ls.Change{{1, true}}))
	}
	if tm.Pending() != 1 {
		t.Fatalf("pending = %d, expected 1", tm.Pending())
	}
	for i := 1; i <= 2; i++ {
		if f := s.ComputeFrame(maxDepth, 1); !f.Empty() || tm.State() {
			t.Fatalf("frame %d: timer output changed early: %+v", i, f)
		}
	}
	f = s.ComputeFrame(maxDepth, 1)
	exp := ls.Frame{
		Wires:      []ls.Change{{2, true}},
		Components: []ls.Change{{10, true}},
	}
	if !cmp.Equal(f, exp) {
		t.Fatalf("frame 3 diff: %s", cmp.Diff(f, exp))
	}
	if tm.Pending() != 0 {
		t.Fatalf("pending = %d after drain", tm.Pending())
	}
}

func TestSimulation_timer_ticks_per_frame(t *testing.T) {
	s := timerCircuit(t, 3)
	tm, _ := s.Component(10)
	s.UpdateSwitchState(1, true)
	// the first stabilization observes the input and counts down once, the
	// next two count down to zero and the fourth applies the transition.
	s.ComputeFrame(maxDepth, 3)
	if tm.State() {
		t.Fatal("timer output changed after 3 stabilizations")
	}
	f := s.ComputeFrame(maxDepth, 1)
	if !tm.State() {
		t.Fatal("timer output did not change after 4 stabilizations")
	}
	if !cmp.Equal(f.Components, []ls.Change{{10, true}}) {
		t.Fatalf("components diff: %s", cmp.Diff(f.Components, []ls.Change{{10, true}}))
	}
}

func TestSimulation_timer_queue(t *testing.T) {
	s := timerCircuit(t, 2)
	tm, _ := s.Component(10)
	// pulse shorter than the delay: both edges are queued and replayed.
	s.UpdateSwitchState(1, true)
	s.ComputeFrame(maxDepth, 1)
	s.UpdateSwitchState(1, false)
	s.ComputeFrame(maxDepth, 1)
	if tm.Pending() != 2 {
		t.Fatalf("pending = %d, expected 2", tm.Pending())
	}
	var states []bool
	for i := 0; i < 4; i++ {
		s.ComputeFrame(maxDepth, 1)
		states = append(states, tm.State())
	}
	exp := []bool{true, false, false, false}
	if !cmp.Equal(states, exp) {
		t.Fatalf("timer output diff: %s", cmp.Diff(states, exp))
	}
}

func TestSimulation_oscillation(t *testing.T) {
	s, logs := newObserved()
	// NOT output wired back to its own input.
	if _, err := s.AddGate(ls.Not, ls.Pos{X: 10, Y: 0}, ls.Right, 1); err != nil {
		t.Fatal(err)
	}
	s.AddWire([]ls.Pos{{10, 0}, {10, 2}, {5, 2}, {5, 0}}, 1)
	s.ComputeConnections()

	s.ComputeFrame(50, 1)
	if s.Ticks() != 50 {
		t.Errorf("ticks = %d, expected 50", s.Ticks())
	}
	if n := logs.FilterMessage("max depth reached before the circuit settled").Len(); n != 1 {
		t.Errorf("got %d max depth diagnostics, expected 1", n)
	}
	s.ComputeFrame(50, 3)
	if n := logs.FilterMessage("max depth reached before the circuit settled").Len(); n != 4 {
		t.Errorf("got %d max depth diagnostics, expected 4", n)
	}
}

func TestSimulation_noop_frame(t *testing.T) {
	s := twoInputs(t, ls.Or)
	s.UpdateSwitchState(1, true)
	f := s.ComputeFrame(maxDepth, 0)
	if !f.Empty() {
		t.Errorf("frame with 0 ticks reported changes: %+v", f)
	}
	if s.Ticks() != 0 {
		t.Errorf("ticks = %d, expected 0", s.Ticks())
	}
	if c, _ := s.Component(10); c.State() {
		t.Error("gate state changed")
	}
}

func TestSimulation_update_switch_state(t *testing.T) {
	s, logs := newObserved()
	s.AddSwitch(ls.Pos{}, 1)
	if _, err := s.AddGate(ls.Or, ls.Pos{X: 10}, ls.Right, 2); err != nil {
		t.Fatal(err)
	}
	s.ComputeConnections()

	s.UpdateSwitchState(3, true)
	s.UpdateSwitchState(2, true)
	if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != 2 {
		t.Errorf("got %d warnings, expected 2", n)
	}
	if c, _ := s.Component(2); c.State() {
		t.Error("gate state set through UpdateSwitchState")
	}

	s.UpdateSwitchState(1, true)
	if c, _ := s.Component(1); !c.State() {
		t.Error("switch state not updated")
	}
	s.UpdateSwitchState(1, true)
	if f := s.ComputeFrame(maxDepth, 1); !f.Empty() {
		t.Errorf("unexpected changes: %+v", f)
	}
}

func TestSimulation_reset(t *testing.T) {
	s := twoInputs(t, ls.And)
	s.UpdateSwitchState(1, true)
	s.ComputeFrame(maxDepth, 1)
	s.Reset()
	if len(s.ComponentIDs()) != 0 || len(s.WireIDs()) != 0 || s.WireGroupCount() != 0 || s.Ticks() != 0 {
		t.Fatalf("simulation not empty after reset: %v %v %d %d",
			s.ComponentIDs(), s.WireIDs(), s.WireGroupCount(), s.Ticks())
	}
	if s.Read(ls.ComponentRef(1)) || s.Read(ls.WireGroupRef(0)) {
		t.Error("stale references must read false")
	}
	if f := s.ComputeFrame(maxDepth, 1); !f.Empty() {
		t.Errorf("empty simulation reported changes: %+v", f)
	}
}

func TestSimulation_overwrite(t *testing.T) {
	s := ls.New()
	s.AddSwitch(ls.Pos{}, 1)
	if _, err := s.AddGate(ls.Not, ls.Pos{X: 3, Y: 4}, ls.Down, 1); err != nil {
		t.Fatal(err)
	}
	s.AddWire([]ls.Pos{{0, 0}}, 5)
	s.AddWire([]ls.Pos{{1, 1}}, 5)
	if ids := s.ComponentIDs(); len(ids) != 1 {
		t.Fatalf("component ids = %v", ids)
	}
	c, _ := s.Component(1)
	if c.Kind != ls.Not || c.Pos != (ls.Pos{X: 3, Y: 4}) {
		t.Errorf("component 1 not replaced: %v at %v", c.Kind, c.Pos)
	}
	w, _ := s.Wire(5)
	if !cmp.Equal(w.Positions, []ls.Pos{{1, 1}}) {
		t.Errorf("wire 5 not replaced: %v", w.Positions)
	}
}

func TestSimulation_add_errors(t *testing.T) {
	s := ls.New()
	for _, k := range []ls.Kind{ls.Switch, ls.Timer, ls.Kind(42)} {
		if _, err := s.AddGate(k, ls.Pos{}, ls.Up, 1); err == nil {
			t.Errorf("AddGate(%v): expected an error", k)
		}
	}
	if _, err := s.AddGate(ls.And, ls.Pos{}, ls.Orientation(4), 1); err == nil {
		t.Error("AddGate with invalid orientation: expected an error")
	}
	if _, err := s.AddTimer(ls.Pos{}, 1, ls.Orientation(-1), 1); err == nil {
		t.Error("AddTimer with invalid orientation: expected an error")
	}
	if ids := s.ComponentIDs(); len(ids) != 0 {
		t.Errorf("failed Add calls left components behind: %v", ids)
	}
}

func TestSimulation_instances(t *testing.T) {
	a, b := twoInputs(t, ls.And), twoInputs(t, ls.And)
	if a.ID() == b.ID() {
		t.Error("instances share the same id")
	}
	a.UpdateSwitchState(1, true)
	a.UpdateSwitchState(2, true)
	simtest.Settle(a, 8)
	simtest.Settle(b, 8)
	ca, _ := a.Component(10)
	cb, _ := b.Component(10)
	if !ca.State() || cb.State() {
		t.Errorf("instances are not independent: a = %v, b = %v", ca.State(), cb.State())
	}
}
