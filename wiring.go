// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ComputeConnections rebuilds wire groups from wire positions and links
// component pins to them. It must be called after any change to the set of
// wires or components and before computing frames. All wire groups start low.
//
// Wires that share at least one position end up in the same group, directly or
// through other wires. A component pin is connected to the group that covers
// its position, if any. Unconnected input pins read false.
//
func (s *Simulation) ComputeConnections() {
	wires := sortedKeys(s.wires)

	// wires are nodes, shared cells are edges. Every wire covering a cell is
	// linked to the first wire seen at that cell.
	g := simple.NewUndirectedGraph()
	for _, id := range wires {
		g.AddNode(simple.Node(id))
	}
	first := make(map[Pos]int)
	for _, id := range wires {
		for _, p := range s.wires[id].Positions {
			w, ok := first[p]
			if !ok {
				first[p] = id
				continue
			}
			if w != id && !g.HasEdgeBetween(int64(w), int64(id)) {
				g.SetEdge(g.NewEdge(simple.Node(w), simple.Node(id)))
			}
		}
	}

	// number groups by their lowest wire id.
	byMin := make(map[int][]int)
	for _, cc := range topo.ConnectedComponents(g) {
		members := make([]int, len(cc))
		for i, n := range cc {
			members[i] = int(n.ID())
		}
		slices.Sort(members)
		byMin[members[0]] = members
	}
	mins := sortedKeys(byMin)

	s.groups = make([]*WireGroup, len(mins))
	s.owner = make(map[int]int, len(wires))
	cells := make(map[Pos]int, len(first))
	for gid, m := range mins {
		wg := &WireGroup{Element: Element{ID: gid}, Wires: byMin[m]}
		for _, id := range wg.Wires {
			w := s.wires[id]
			w.unlink()
			w.set(false)
			s.owner[id] = gid
			for _, p := range w.Positions {
				if _, ok := cells[p]; !ok {
					cells[p] = gid
					wg.Positions = append(wg.Positions, p)
				}
			}
		}
		s.groups[gid] = wg
	}

	links := 0
	for _, id := range s.ComponentIDs() {
		c := s.comps[id]
		c.unlink()
		if gid, ok := cells[c.Out]; ok {
			wg := s.groups[gid]
			c.Outputs = append(c.Outputs, WireGroupRef(gid))
			wg.Inputs = append(wg.Inputs, ComponentRef(id))
			links++
			s.log.Debug("connected output",
				zap.Stringer("kind", c.Kind), zap.Int("component", id), zap.Int("group", gid))
		}
		for pin, p := range c.In {
			gid, ok := cells[p]
			if !ok {
				continue
			}
			wg := s.groups[gid]
			c.Inputs = append(c.Inputs, WireGroupRef(gid))
			wg.Outputs = append(wg.Outputs, ComponentRef(id))
			links++
			s.log.Debug("connected input",
				zap.Stringer("kind", c.Kind), zap.Int("component", id), zap.Int("pin", pin), zap.Int("group", gid))
		}
	}

	s.log.Info("connections computed",
		zap.Int("wires", len(wires)),
		zap.Int("groups", len(s.groups)),
		zap.Int("components", len(s.comps)),
		zap.Int("links", links))
}
