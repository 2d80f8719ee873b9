// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"github.com/db47h/chipsim/internal/depgraph"
)

// buildGraph returns the dependency graph of c's parts: part a depends on part
// b if an output of b is connected to an input of a. Connections from or to
// c's own pins, connections of a part to itself, and connections whose
// endpoints are not parts of c are not dependencies.
//
func buildGraph(c *Chip) *depgraph.Graph[*Chip] {
	g := depgraph.New[*Chip]()
	for _, p := range c.parts {
		g.AddNode(p)
	}
	for _, cn := range c.conns {
		// AddEdge ignores self loops and chips that are not nodes.
		g.AddEdge(cn.To.chip, cn.From.chip)
	}
	return g
}

// A Schedule is the evaluation plan of a composite chip's parts for one step.
//
type Schedule struct {
	// Order lists the parts that are not part of a feedback loop, each one
	// after all the parts it depends on.
	Order []*Chip
	// Cyclic lists the parts involved in feedback loops, in declaration
	// order.
	Cyclic []*Chip

	cycles depgraph.Set[*Chip]
}

// InCycle returns true if part p is involved in a feedback loop.
//
func (s *Schedule) InCycle(p *Chip) bool { return s.cycles.Has(p) }

// ScheduleOf computes the schedule of composite chip c. It returns an empty
// schedule for primitives.
//
func ScheduleOf(c *Chip) *Schedule {
	g := buildGraph(c)
	cycles := g.Cycles()
	s := &Schedule{cycles: cycles}
	if len(cycles) > 0 {
		s.Cyclic = make([]*Chip, 0, len(cycles))
		for _, p := range g.Nodes() {
			if cycles.Has(p) {
				s.Cyclic = append(s.Cyclic, p)
			}
		}
		g = g.Filter(func(p *Chip) bool { return !cycles.Has(p) })
	}
	s.Order = g.Sort()
	return s
}
