// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"github.com/db47h/chipsim/internal/hdl"
	"github.com/pkg/errors"
)

// Pin returns the pin designated by ref. A reference is either a pin name of c
// ("in", "bus[2]") or a part name and one of its pin names ("not1.out").
//
func (c *Chip) Pin(ref string) (*Pin, error) {
	r, err := hdl.ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if r.Kind == hdl.RefRange {
		return nil, errors.Errorf("%s: pin range not allowed here", ref)
	}
	return c.lookup(r.Part, r.Names()[0])
}

func (c *Chip) lookup(part, name string) (*Pin, error) {
	t := c
	if part != "" {
		if t = c.Part(part); t == nil {
			return nil, errors.Wrapf(ErrUnknownChip, "part %s in %s", part, c.Path())
		}
	}
	if p := t.Input(name); p != nil {
		return p, nil
	}
	if p := t.Output(name); p != nil {
		return p, nil
	}
	return nil, errors.Wrapf(ErrUnknownPin, "%s in %s", name, t.Path())
}

// ConnectWire parses a wire description and adds the corresponding
// connections to c. The syntax is:
//
//	from -> to
//
// where from and to are pin references as accepted by Pin, with optional bus
// ranges. Both sides of a wire with ranges must have the same width, unless
// the source is a single pin, in which case it fans out to all destinations:
//
//	a[0..3] -> reg.in[0..3]
//	clk.out -> dff[0..7]
//
func (c *Chip) ConnectWire(wire string) ([]*Connection, error) {
	from, to, err := hdl.ParseWire(wire)
	if err != nil {
		return nil, err
	}
	pairs, err := hdl.Expand(from, to)
	if err != nil {
		return nil, err
	}
	// resolve everything before adding anything.
	type ends struct{ from, to *Pin }
	es := make([]ends, len(pairs))
	for i, p := range pairs {
		if es[i].from, err = c.lookup(p.From.Part, p.From.Pin); err != nil {
			return nil, err
		}
		if es[i].to, err = c.lookup(p.To.Part, p.To.Pin); err != nil {
			return nil, err
		}
	}
	conns := make([]*Connection, 0, len(es))
	for _, e := range es {
		cn, err := c.Connect(e.from, e.to)
		if err != nil {
			for _, x := range conns {
				c.Disconnect(x)
			}
			return nil, err
		}
		conns = append(conns, cn)
	}
	return conns, nil
}
