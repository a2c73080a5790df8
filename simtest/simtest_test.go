package simtest_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
)

func TestSettle(t *testing.T) {
	s := logicsim.New()
	s.AddSwitch(logicsim.Pos{}, 1)
	s.AddWire([]logicsim.Pos{{X: 0, Y: 0}, {X: 5, Y: 0}}, 1)
	if _, err := s.AddTimer(logicsim.Pos{X: 10}, 3, logicsim.Right, 2); err != nil {
		t.Fatal(err)
	}
	s.ComputeConnections()

	if n, ok := simtest.Settle(s, 10); !ok || n != 1 {
		t.Fatalf("idle circuit: Settle = %d, %v", n, ok)
	}
	s.UpdateSwitchState(1, true)
	// frame 1 queues the transition, frame 4 applies it, frame 5 is empty.
	if n, ok := simtest.Settle(s, 10); !ok || n != 5 {
		t.Fatalf("Settle = %d, %v, expected 5, true", n, ok)
	}
	if !simtest.Idle(s) {
		t.Error("timer still has pending transitions")
	}

	s.UpdateSwitchState(1, false)
	if n, ok := simtest.Settle(s, 2); ok || n != 2 {
		t.Fatalf("Settle = %d, %v, expected 2, false", n, ok)
	}
	if simtest.Idle(s) {
		t.Error("expected a pending transition")
	}
}

func TestTruthTable(t *testing.T) {
	s := logicsim.New()
	s.AddSwitch(logicsim.Pos{X: 0, Y: 4}, 1)
	s.AddSwitch(logicsim.Pos{X: 2, Y: 4}, 2)
	s.AddWire([]logicsim.Pos{{X: 0, Y: 4}, {X: -1, Y: 4}, {X: -1, Y: 5}}, 1)
	s.AddWire([]logicsim.Pos{{X: 2, Y: 4}, {X: 1, Y: 4}, {X: 1, Y: 5}}, 2)
	// XOR at (0, 0) facing down has its inputs at (-1, 5) and (1, 5).
	if _, err := s.AddGate(logicsim.Xor, logicsim.Pos{}, logicsim.Down, 3); err != nil {
		t.Fatal(err)
	}
	s.ComputeConnections()
	simtest.TruthTable(t, s, []int{1, 2}, 3, []bool{false, true, true, false})
}
