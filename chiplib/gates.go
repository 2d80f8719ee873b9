// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package chiplib provides a library of primitive chips for chipsim.
//
// Every chip kind is exposed as a *chipsim.PartSpec that can be instantiated
// directly or registered in a chipsim.Library (see Register).
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package chiplib

import (
	"strconv"

	"github.com/db47h/chipsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
	pClk = "clk"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = chipsim.BusPinName(n, j)
		}
	}
	return b
}

// Not is a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
var Not = &chipsim.PartSpec{Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return func(*chipsim.Clock) { out.Send(!in.Recv()) }
	},
}

// Buffer copies its input to its output.
//
//	Inputs: in
//	Outputs: out
//	Function: out = in
//
var Buffer = &chipsim.PartSpec{Name: "BUFFER", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return func(*chipsim.Clock) { out.Send(in.Recv()) }
	},
}

// other gates
type gate func(a, b bool) bool

func (g gate) mount(s *chipsim.Socket) chipsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return func(*chipsim.Clock) { out.Send(g(a.Recv(), b.Recv())) }
}

// NewGate returns the spec of a two input gate computing fn.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = fn(a, b)
//
func NewGate(name string, fn func(a, b bool) bool) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    name,
		Inputs:  []string{pA, pB},
		Outputs: []string{pOut},
		Mount:   gate(fn).mount,
	}
}

// Two input gates.
//
//	Inputs: a, b
//	Outputs: out
//
var (
	And  = NewGate("AND", func(a, b bool) bool { return a && b })
	Nand = NewGate("NAND", func(a, b bool) bool { return !(a && b) })
	Or   = NewGate("OR", func(a, b bool) bool { return a || b })
	Nor  = NewGate("NOR", func(a, b bool) bool { return !(a || b) })
	Xor  = NewGate("XOR", func(a, b bool) bool { return a && !b || !a && b })
	Xnor = NewGate("XNOR", func(a, b bool) bool { return a && b || !a && !b })
)

// NotN returns the spec of a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "NOT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *chipsim.Socket) chipsim.Component {
			ins, outs := s.Bus(pIn), s.Bus(pOut)
			return func(*chipsim.Clock) {
				for i, p := range ins {
					outs[i].Send(!p.Recv())
				}
			}
		}}
}

type gateN struct {
	fn func(bool, bool) bool
}

func (g *gateN) mount(s *chipsim.Socket) chipsim.Component {
	a, b, out := s.Bus(pA), s.Bus(pB), s.Bus(pOut)
	return func(*chipsim.Clock) {
		for i := range a {
			out[i].Send(g.fn(a[i].Recv(), b[i].Recv()))
		}
	}
}

// GateN returns the spec of a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = f(a[i], b[i]) }
//
func GateN(name string, bits int, f func(bool, bool) bool) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount:   (&gateN{f}).mount,
	}
}

// 16 bits gates.
//
//	Inputs: a[16], b[16] (in[16] for Not16)
//	Outputs: out[16]
//
var (
	Not16  = NotN(16)
	And16  = GateN("AND", 16, func(a, b bool) bool { return a && b })
	Nand16 = GateN("NAND", 16, func(a, b bool) bool { return !(a && b) })
	Or16   = GateN("OR", 16, func(a, b bool) bool { return a || b })
	Nor16  = GateN("NOR", 16, func(a, b bool) bool { return !(a || b) })
)

// OrNWay returns the spec of a N-Way OR gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ... || in[n-1]
//
func OrNWay(ways int) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "OR" + strconv.Itoa(ways) + "WAY",
		Inputs:  bus(ways, pIn),
		Outputs: []string{pOut},
		Mount: func(s *chipsim.Socket) chipsim.Component {
			in, out := s.Bus(pIn), s.Pin(pOut)
			return func(*chipsim.Clock) {
				for _, p := range in {
					if p.Recv() {
						out.Send(true)
						return
					}
				}
				out.Send(false)
			}
		}}
}

// AndNWay returns the spec of a N-Way AND gate.
//
//	Inputs: in[n]
//	Outputs: out
//	Function: out = in[0] && in[1] && in[2] && ... && in[n-1]
//
func AndNWay(ways int) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "AND" + strconv.Itoa(ways) + "WAY",
		Inputs:  bus(ways, pIn),
		Outputs: []string{pOut},
		Mount: func(s *chipsim.Socket) chipsim.Component {
			in, out := s.Bus(pIn), s.Pin(pOut)
			return func(*chipsim.Clock) {
				for _, p := range in {
					if !p.Recv() {
						out.Send(false)
						return
					}
				}
				out.Send(true)
			}
		}}
}
