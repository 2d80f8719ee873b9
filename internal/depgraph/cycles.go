// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package depgraph

// Cycles returns the nodes that take part in a feedback loop, i.e. nodes
// reachable from themselves through at least one edge.
//
// The search is a single depth first traversal (Tarjan): each node gets a
// discovery index and a low link, the lowest index reachable from its subtree
// while still on the active path. A node whose low link equals its own index
// closes a strongly connected component; components of two or more nodes are
// cycles. Since self loops are never edges, a node depending only on itself is
// never reported. Neither are nodes that merely depend on a loop, or that a
// loop depends on, without being on it: the result is exactly the union of
// the non trivial components, not every node visited while unwinding from one.
//
func (g *Graph[N]) Cycles() Set[N] {
	t := tarjan[N]{
		g:     g,
		index: make(map[N]int, len(g.nodes)),
		low:   make(map[N]int, len(g.nodes)),
		on:    make(Set[N]),
		out:   make(Set[N]),
	}
	for _, n := range g.nodes {
		if _, ok := t.index[n]; !ok {
			t.visit(n)
		}
	}
	return t.out
}

type tarjan[N comparable] struct {
	g     *Graph[N]
	next  int
	index map[N]int
	low   map[N]int
	stack []N
	on    Set[N] // nodes on stack
	out   Set[N]
}

func (t *tarjan[N]) visit(n N) {
	t.index[n] = t.next
	t.low[n] = t.next
	t.next++
	t.stack = append(t.stack, n)
	t.on.Add(n)

	for _, d := range t.g.deps[n] {
		if _, ok := t.index[d]; !ok {
			t.visit(d)
			t.low[n] = min(t.low[n], t.low[d])
		} else if t.on.Has(d) {
			// back edge into the active path
			t.low[n] = min(t.low[n], t.index[d])
		}
	}

	if t.low[n] != t.index[n] {
		return
	}
	// n is the root of a component: pop it.
	i := len(t.stack) - 1
	for t.stack[i] != n {
		i--
	}
	scc := t.stack[i:]
	t.stack = t.stack[:i]
	for _, m := range scc {
		delete(t.on, m)
		if len(scc) > 1 {
			t.out.Add(m)
		}
	}
}
