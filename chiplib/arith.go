// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib

import (
	"strconv"

	"github.com/db47h/chipsim"
)

// HalfAdder is a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
var HalfAdder = &chipsim.PartSpec{
	Name:    "HALFADDER",
	Inputs:  []string{pA, pB},
	Outputs: []string{"s", "c"},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		a, b := s.Pin(pA), s.Pin(pB)
		sum, cout := s.Pin("s"), s.Pin("c")
		return func(*chipsim.Clock) {
			va, vb := a.Recv(), b.Recv()
			sum.Send(va != vb)
			cout.Send(va && vb)
		}
	}}

// FullAdder is a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
var FullAdder = &chipsim.PartSpec{
	Name:    "FULLADDER",
	Inputs:  []string{pA, pB, "cin"},
	Outputs: []string{"s", "cout"},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		a, b, cin := s.Pin(pA), s.Pin(pB), s.Pin("cin")
		sum, cout := s.Pin("s"), s.Pin("cout")
		return func(*chipsim.Clock) {
			va, vb, vc := a.Recv(), b.Recv(), cin.Recv()
			s := va != vb
			sum.Send(s != vc)
			cout.Send(s && vc || va && vb)
		}
	}}

// AdderN returns the spec of a N-bits adder
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//
func AdderN(bits int) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "ADDER" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: append(bus(bits, pOut), "c"),
		Mount: func(s *chipsim.Socket) chipsim.Component {
			a, b := s.Bus(pA), s.Bus(pB)
			out, cout := s.Bus(pOut), s.Pin("c")
			return func(*chipsim.Clock) {
				cc := false
				for i, o := range out {
					va, vb := a[i].Recv(), b[i].Recv()
					s0 := va != vb
					o.Send(s0 != cc)
					cc = va && vb || s0 && cc
				}
				cout.Send(cc)
			}
		}}
}

// Adder16 is a 16 bits adder.
//
var Adder16 = AdderN(16)
