// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package depgraph implements the "depends on" graphs used to schedule the
// parts of a composite chip: cycle detection and topological ordering.
//
// Nodes keep their insertion order and so do edges. All traversals follow that
// order, which makes every result deterministic for a given insertion
// sequence.
//
package depgraph

// Set is a set of graph nodes.
//
type Set[N comparable] map[N]struct{}

// Has returns true if n is in the set.
//
func (s Set[N]) Has(n N) bool {
	_, ok := s[n]
	return ok
}

// Add adds n to the set.
//
func (s Set[N]) Add(n N) { s[n] = struct{}{} }

// A Graph is a directed graph where an edge a -> b reads "a depends on b".
//
// Self loops are never recorded: a node depending on itself does not need
// any scheduling.
//
type Graph[N comparable] struct {
	nodes []N
	deps  map[N][]N
	seen  map[edge[N]]struct{}
}

type edge[N comparable] struct {
	from, to N
}

// New returns an empty graph.
//
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		deps: make(map[N][]N),
		seen: make(map[edge[N]]struct{}),
	}
}

// AddNode adds n to the graph. Adding an existing node is a no-op.
//
func (g *Graph[N]) AddNode(n N) {
	if _, ok := g.deps[n]; ok {
		return
	}
	g.nodes = append(g.nodes, n)
	g.deps[n] = nil
}

// AddEdge records that from depends on to. It returns false and leaves the
// graph untouched if from == to or if either node is not in the graph.
//
func (g *Graph[N]) AddEdge(from, to N) bool {
	if from == to || !g.Has(from) || !g.Has(to) {
		return false
	}
	e := edge[N]{from, to}
	if _, ok := g.seen[e]; ok {
		return true
	}
	g.seen[e] = struct{}{}
	g.deps[from] = append(g.deps[from], to)
	return true
}

// Has returns true if n is a node of g.
//
func (g *Graph[N]) Has(n N) bool {
	_, ok := g.deps[n]
	return ok
}

// Nodes returns the graph nodes in insertion order.
//
func (g *Graph[N]) Nodes() []N { return g.nodes }

// Deps returns the nodes n depends on, in insertion order.
//
func (g *Graph[N]) Deps(n N) []N { return g.deps[n] }

// Len returns the node count.
//
func (g *Graph[N]) Len() int { return len(g.nodes) }

// Filter returns the sub-graph of nodes for which keep returns true, together
// with the edges between them.
//
func (g *Graph[N]) Filter(keep func(N) bool) *Graph[N] {
	f := New[N]()
	for _, n := range g.nodes {
		if keep(n) {
			f.AddNode(n)
		}
	}
	for _, n := range f.nodes {
		for _, d := range g.deps[n] {
			f.AddEdge(n, d)
		}
	}
	return f
}
