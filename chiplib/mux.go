// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib

import (
	"strconv"

	"github.com/db47h/chipsim"
)

// Mux is a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
var Mux = &chipsim.PartSpec{
	Name:    "MUX",
	Inputs:  []string{pA, pB, pSel},
	Outputs: []string{pOut},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return func(*chipsim.Clock) {
			if sel.Recv() {
				out.Send(b.Recv())
			} else {
				out.Send(a.Recv())
			}
		}
	},
}

// DMux is a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
var DMux = &chipsim.PartSpec{
	Name:    "DMUX",
	Inputs:  []string{pIn, pSel},
	Outputs: []string{pA, pB},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		in, sel, a, b := s.Pin(pIn), s.Pin(pSel), s.Pin(pA), s.Pin(pB)
		return func(*chipsim.Clock) {
			if sel.Recv() {
				a.Send(false)
				b.Send(in.Recv())
			} else {
				a.Send(in.Recv())
				b.Send(false)
			}
		}
	},
}

// MuxN returns the spec of an n-bits Mux
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(bits int) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "MUX" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *chipsim.Socket) chipsim.Component {
			a, b, sel := s.Bus(pA), s.Bus(pB), s.Pin(pSel)
			o := s.Bus(pOut)
			return func(*chipsim.Clock) {
				src := a
				if sel.Recv() {
					src = b
				}
				for i := range o {
					o[i].Send(src[i].Recv())
				}
			}
		}}
}

// Mux16 is a 16-bits Mux.
//
var Mux16 = MuxN(16)
