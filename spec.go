// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"github.com/pkg/errors"
)

// A Component is the behavior of a primitive chip. It is called once per
// simulation step; it must only read and write the pins of its own chip and
// may query the clock.
//
type Component func(clk *Clock)

// A MountFn mounts a primitive part into socket s. MountFn's should query
// the socket for the pins they need and return a closure around them.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "NOT",
//		Inputs:  IO("in"),
//		Outputs: IO("out"),
//		Mount: func(s *Socket) Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return func(*Clock) { out.Send(!in.Recv()) }
//		}}
//
// Per instance state, like the stored bit of a flip flop, lives in variables
// captured by the returned closure.
//
type MountFn func(s *Socket) Component

// A PartSpec is a chip template (its blueprint).
//
// Primitive specs set Mount. Composite specs set Parts and Wires instead; a
// composite spec with no parts is valid and does nothing.
//
type PartSpec struct {
	// Part name. Chips built from this spec have it as Kind.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct from each other and from inputs.
	Outputs []string

	// Mount function for primitive parts (see MountFn).
	Mount MountFn

	// Parts lists the sub-chips of a composite part.
	Parts []Part
	// Wires lists the connections of a composite part as "from -> to"
	// strings. See (*Chip).ConnectWire for the syntax.
	Wires []string
}

// A Part places a named instance of a PartSpec in a composite PartSpec.
//
type Part struct {
	Name string
	Spec *PartSpec
}

// IsPrimitive returns true if p describes a primitive part.
//
func (p *PartSpec) IsPrimitive() bool { return p.Mount != nil }

// NewChip instantiates p, recursively instantiating its parts.
//
// It returns an error wrapping ErrSelfContainment if p contains itself, directly
// or through one of its parts.
//
func (p *PartSpec) NewChip(name string) (*Chip, error) {
	return p.newChip(name, nil)
}

func (p *PartSpec) newChip(name string, stack []*PartSpec) (*Chip, error) {
	for _, s := range stack {
		if s == p {
			return nil, errors.Wrapf(ErrSelfContainment, "%s", p.Name)
		}
	}
	c, err := newChip(name, p.Name, p.Inputs, p.Outputs)
	if err != nil {
		return nil, err
	}
	if p.Mount != nil {
		if len(p.Parts) > 0 || len(p.Wires) > 0 {
			return nil, errors.Wrap(ErrPrimitive, p.Name)
		}
		u := p.Mount(&Socket{c})
		if u == nil {
			u = func(*Clock) {}
		}
		c.update = u
		return c, nil
	}

	stack = append(stack, p)
	for _, pt := range p.Parts {
		if pt.Spec == nil {
			return nil, errors.Wrapf(ErrUnknownChip, "%s: part %s has no spec", p.Name, pt.Name)
		}
		sub, err := pt.Spec.newChip(pt.Name, stack)
		if err != nil {
			return nil, errors.Wrap(err, p.Name)
		}
		if err = c.AddPart(sub); err != nil {
			return nil, err
		}
	}
	for _, w := range p.Wires {
		if _, err = c.ConnectWire(w); err != nil {
			return nil, errors.Wrap(err, p.Name)
		}
	}
	return c, nil
}
