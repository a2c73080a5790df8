// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim runs one of the demo circuits and prints what changes on
// every frame, or renders the grid in the terminal.
//
package main

import (
	"flag"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gridlib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// stepFunc updates the circuit inputs before frame n.
type stepFunc func(s *logicsim.Simulation, n int)

func build(demo string, s *logicsim.Simulation, delay uint) (stepFunc, error) {
	b := gridlib.NewBuilder(s)
	switch demo {
	case "clock":
		_, err := gridlib.Clock(b, logicsim.Pos{X: 6, Y: 1}, delay)
		return nil, err
	case "adder":
		ha, err := gridlib.HalfAdder(b, logicsim.Pos{X: 1, Y: 2})
		if err != nil {
			return nil, err
		}
		a, c := b.Switch(ha.A), b.Switch(ha.B)
		// count from 0 to 3 on the inputs, one value every 4 frames.
		return func(s *logicsim.Simulation, n int) {
			v := n / 4
			s.UpdateSwitchState(a, v&2 != 0)
			s.UpdateSwitchState(c, v&1 != 0)
		}, nil
	}
	return nil, errors.Errorf("unknown demo %q", demo)
}

func main() {
	defer zap.S().Sync()
	level := zap.LevelFlag("log-level", zap.InfoLevel, "set log level")
	demo := flag.String("demo", "clock", "demo circuit: clock or adder")
	frames := flag.Int("frames", 16, "number of frames to compute, 0 runs until quit in the viewer")
	maxDepth := flag.Uint("max-depth", 100, "maximum number of ticks per stabilization")
	ticks := flag.Uint("ticks", 1, "number of stabilizations per frame")
	delay := flag.Uint("delay", 2, "clock delay in frames")
	tui := flag.Bool("tui", false, "render the grid in the terminal, press q to quit")
	period := flag.Duration("period", 250*time.Millisecond, "time between frames in the viewer")
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	if *tui {
		// keep the terminal for the viewer
		cfg.OutputPaths = []string{"logicsim.log"}
	}
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)

	s := logicsim.New(logicsim.WithLogger(dev))
	step, err := build(*demo, s, *delay)
	if err != nil {
		zap.S().Fatalf("build %s: %v", *demo, err)
	}
	s.ComputeConnections()

	if *tui {
		v := viewer{sim: s, step: step, maxDepth: *maxDepth, ticks: *ticks}
		if err := v.run(*frames, *period); err != nil {
			zap.S().Fatalf("viewer: %v", err)
		}
		return
	}

	for n := 0; n < *frames; n++ {
		if step != nil {
			step(s, n)
		}
		f := s.ComputeFrame(*maxDepth, *ticks)
		if f.Empty() {
			zap.S().Debugw("frame", "n", n)
			continue
		}
		zap.S().Infow("frame", "n", n, "wires", f.Wires, "components", f.Components)
	}
	zap.S().Infow("done", "ticks", s.Ticks())
}
