// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib

import "github.com/db47h/chipsim"

// DFF is an edge triggered data flip flop.
//
//	Inputs: in, clk
//	Outputs: out
//	Function: out latches in on every rising edge of clk.
//
var DFF = &chipsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pIn, pClk},
	Outputs: []string{pOut},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		in, clk, out := s.Pin(pIn), s.Pin(pClk), s.Pin(pOut)
		var prev, cur bool
		return func(*chipsim.Clock) {
			// raising edge?
			if c := clk.Recv(); c != prev {
				if c {
					cur = in.Recv()
				}
				prev = c
			}
			out.Send(cur)
		}
	}}

// Clock is a square wave generator driven by the circuit clock.
//
//	Inputs: freq[2]
//	Outputs: out
//	Function: out = clk.IsHigh(freq[0] + 2*freq[1])
//
// Frequency selector 0 has a period of 1 time unit; each higher selector
// halves the period.
//
var Clock = &chipsim.PartSpec{
	Name:    "CLOCK",
	Inputs:  bus(2, "freq"),
	Outputs: []string{pOut},
	Mount: func(s *chipsim.Socket) chipsim.Component {
		freq, out := s.Bus("freq"), s.Pin(pOut)
		return func(clk *chipsim.Clock) {
			out.Send(clk.IsHigh(int(freq.Int64())))
		}
	}}
