/*
Package chipsim provides a digital logic simulator for hierarchical chips.

A chip is either a primitive, whose behavior is a Go closure, or a composite
made of other chips (parts) wired together with directed connections. Chips
are instantiated from a PartSpec; the chiplib package provides the usual
gates, muxers, adders and a clock.

A Circuit advances a root chip one step at a time. Within a composite, parts
are evaluated in dependency order, so a purely combinational circuit settles
in a single step. Parts caught in a feedback loop are evaluated after the
others, once per step by default (see WithCycleIterations), so that a loop
converges over successive steps.

Wires between pins use a small notation where a range expands to one
connection per pin:

	a -> nand.a
	in[0..3] -> not16.in[4..7]
	sel -> mux.sel

Custom primitives can be written as closures (see PartSpec.Mount) or as
structs with tagged pin fields (see MakePart).
*/
package chipsim
