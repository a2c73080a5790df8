// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/db47h/logicsim"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/pkg/errors"
)

var symbols = map[logicsim.Kind]rune{
	logicsim.Switch: 'S',
	logicsim.And:    '&',
	logicsim.Or:     '|',
	logicsim.Xor:    '^',
	logicsim.Not:    '!',
	logicsim.Buffer: 'B',
	logicsim.Latch:  'L',
	logicsim.Timer:  'T',
}

type cell struct {
	r  rune
	on bool
}

type viewer struct {
	sim      *logicsim.Simulation
	step     stepFunc
	maxDepth uint
	ticks    uint

	min, max logicsim.Pos
}

// bounds computes the grid area covered by wires and components.
func (v *viewer) bounds() {
	first := true
	grow := func(p logicsim.Pos) {
		if first {
			v.min, v.max = p, p
			first = false
			return
		}
		v.min.X, v.min.Y = min(v.min.X, p.X), min(v.min.Y, p.Y)
		v.max.X, v.max.Y = max(v.max.X, p.X), max(v.max.Y, p.Y)
	}
	for _, id := range v.sim.WireIDs() {
		w, _ := v.sim.Wire(id)
		for _, p := range w.Positions {
			grow(p)
		}
	}
	for _, id := range v.sim.ComponentIDs() {
		c, _ := v.sim.Component(id)
		grow(c.Pos)
		for _, p := range c.In {
			grow(p)
		}
	}
}

func (v *viewer) render() string {
	w, h := v.max.X-v.min.X+1, v.max.Y-v.min.Y+1
	g := make([][]cell, h)
	for i := range g {
		g[i] = make([]cell, w)
		for j := range g[i] {
			g[i][j].r = ' '
		}
	}
	put := func(p logicsim.Pos, r rune, on bool) {
		g[p.Y-v.min.Y][p.X-v.min.X] = cell{r, on}
	}
	for _, id := range v.sim.WireIDs() {
		wr, _ := v.sim.Wire(id)
		gid, ok := v.sim.GroupOf(id)
		on := ok && v.sim.Read(logicsim.WireGroupRef(gid))
		for _, p := range wr.Positions {
			put(p, '+', on)
		}
	}
	for _, id := range v.sim.ComponentIDs() {
		c, _ := v.sim.Component(id)
		put(c.Pos, symbols[c.Kind], c.State())
	}

	var sb strings.Builder
	for _, row := range g {
		for _, c := range row {
			switch {
			case c.r == ' ':
				sb.WriteRune(' ')
			case c.on:
				fmt.Fprintf(&sb, "[%c](fg:green)", c.r)
			default:
				fmt.Fprintf(&sb, "[%c](fg:white)", c.r)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// run computes frames at the given period and renders the grid after each
// one. It returns when the user presses q. If frames > 0, the display freezes
// after that many frames.
func (v *viewer) run(frames int, period time.Duration) error {
	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "init termui")
	}
	defer ui.Close()

	v.bounds()
	p := widgets.NewParagraph()
	p.SetRect(0, 0, v.max.X-v.min.X+3, v.max.Y-v.min.Y+3)
	draw := func(n int) {
		p.Title = fmt.Sprintf("frame %d", n)
		p.Text = v.render()
		ui.Render(p)
	}
	draw(0)

	tk := time.NewTicker(period)
	defer tk.Stop()
	events := ui.PollEvents()
	for n := 0; ; {
		select {
		case e := <-events:
			if e.ID == "q" || e.ID == "<C-c>" {
				return nil
			}
		case <-tk.C:
			if frames > 0 && n >= frames {
				continue
			}
			if v.step != nil {
				v.step(v.sim, n)
			}
			v.sim.ComputeFrame(v.maxDepth, v.ticks)
			n++
			draw(n)
		}
	}
}
