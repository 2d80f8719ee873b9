// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"github.com/db47h/chipsim/internal/hdl"
)

// ParseIO parses a pin list description and returns individual pin names,
// also expanding bus declarations to individual pin names. For example:
//
//	ParseIO("a, b, bus[2]") // returns []string{"a", "b", "bus[0]", "bus[1]"}
//
func ParseIO(spec string) ([]string, error) {
	return hdl.ParseIO(spec)
}

// IO is like ParseIO but panics on error. It is meant for static PartSpec
// definitions:
//
//	spec := &PartSpec{Name: "MUX", Inputs: IO("a, b, sel"), Outputs: IO("out"), ...}
//
func IO(spec string) []string {
	names, err := hdl.ParseIO(spec)
	if err != nil {
		panic(err)
	}
	return names
}
