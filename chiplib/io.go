// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib

import (
	"strconv"

	"github.com/db47h/chipsim"
)

// Constant outputs.
//
//	Outputs: out
//	Function: out = true (True) or out = false (False)
//
var (
	True  = constant("TRUE", true)
	False = constant("FALSE", false)
)

func constant(name string, v bool) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    name,
		Outputs: []string{pOut},
		Mount: func(s *chipsim.Socket) chipsim.Component {
			out := s.Pin(pOut)
			return func(*chipsim.Clock) { out.Send(v) }
		},
	}
}

// Input returns the spec of a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "INPUT",
		Outputs: []string{pOut},
		Mount: func(s *chipsim.Socket) chipsim.Component {
			out := s.Pin(pOut)
			return func(*chipsim.Clock) { out.Send(f()) }
		},
	}
}

// Output returns the spec of an output or probe. The fn function is
// called with the input pin state every time the chip is evaluated.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:   "OUTPUT",
		Inputs: []string{pIn},
		Mount: func(s *chipsim.Socket) chipsim.Component {
			in := s.Pin(pIn)
			return func(*chipsim.Clock) { f(in.Recv()) }
		},
	}
}

// InputN returns the spec of an input bus of the given bits size.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() int64) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Outputs: bus(bits, pOut),
		Mount: func(s *chipsim.Socket) chipsim.Component {
			pins := s.Bus(pOut)
			return func(*chipsim.Clock) { pins.SendInt64(f()) }
		}}
}

// OutputN returns the spec of an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(int64)) *chipsim.PartSpec {
	return &chipsim.PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: bus(bits, pIn),
		Mount: func(s *chipsim.Socket) chipsim.Component {
			pins := s.Bus(pIn)
			return func(*chipsim.Clock) { f(pins.Int64()) }
		}}
}
