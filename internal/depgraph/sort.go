// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package depgraph

// Sort returns the graph nodes in dependency order: for every edge a -> b, b
// comes before a. Nodes are emitted in depth first post-order, starting from
// each node in insertion order.
//
// Sort is meant for acyclic graphs (see Filter and Cycles). On a cyclic graph
// it still terminates: a node already on the recursion stack is not entered
// again, so the returned order only violates edges that close a cycle.
//
func (g *Graph[N]) Sort() []N {
	s := sorter[N]{
		g:       g,
		visited: make(Set[N], len(g.nodes)),
		stack:   make(Set[N]),
		out:     make([]N, 0, len(g.nodes)),
	}
	for _, n := range g.nodes {
		s.visit(n)
	}
	return s.out
}

type sorter[N comparable] struct {
	g       *Graph[N]
	visited Set[N]
	stack   Set[N]
	out     []N
}

func (s *sorter[N]) visit(n N) {
	if s.visited.Has(n) || s.stack.Has(n) {
		return
	}
	s.stack.Add(n)
	for _, d := range s.g.deps[n] {
		s.visit(d)
	}
	delete(s.stack, n)
	s.visited.Add(n)
	s.out = append(s.out, n)
}
