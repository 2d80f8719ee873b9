// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

// A Socket gives a MountFn access to the pins of the primitive chip being
// mounted.
//
type Socket struct {
	c *Chip
}

// Chip returns the chip being mounted.
//
func (s *Socket) Chip() *Chip { return s.c }

// Pin returns the named input or output pin.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) *Pin {
	if p := s.c.Input(name); p != nil {
		return p
	}
	if p := s.c.Output(name); p != nil {
		return p
	}
	panic("pin " + name + " does not exist in " + s.c.Kind)
}

// Bus returns the pins of the named bus, in index order.
// This function panics if the bus does not exist.
//
func (s *Socket) Bus(name string) Pins {
	var out Pins
	for i := 0; ; i++ {
		n := BusPinName(name, i)
		p := s.c.Input(n)
		if p == nil {
			p = s.c.Output(n)
		}
		if p == nil {
			break
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		panic("bus " + name + " does not exist in " + s.c.Kind)
	}
	return out
}
