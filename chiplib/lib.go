// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib

import "github.com/db47h/chipsim"

// Builtins returns the specs of all the primitives in this package that can be
// referenced by name. Function based parts (Input, Output, ...) are not
// included.
//
func Builtins() []*chipsim.PartSpec {
	return []*chipsim.PartSpec{
		Not, Buffer, And, Nand, Or, Nor, Xor, Xnor,
		Not16, And16, Nand16, Or16, Nor16,
		OrNWay(4), OrNWay(8), AndNWay(4), AndNWay(8),
		Mux, DMux, Mux16,
		HalfAdder, FullAdder, Adder16,
		DFF, Clock,
		True, False,
	}
}

// Register registers all built-in primitives into l.
//
func Register(l *chipsim.Library) error {
	return l.Register(Builtins()...)
}

// NewLibrary returns a new library holding the built-in primitives.
//
func NewLibrary() *chipsim.Library {
	l, err := chipsim.NewLibrary(Builtins()...)
	if err != nil {
		// names are unique by construction
		panic(err)
	}
	return l
}
