// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// A Chip is a circuit element instance: either a primitive backed by a
// Component, or a composite made of sub-chips (parts) and the connections
// between them.
//
// Chips are created by instantiating a PartSpec (see PartSpec.NewChip and
// Library.New) or, for editors building circuits interactively, with
// NewComposite. Structural edits (AddPart, RemovePart, Connect, Disconnect)
// must only happen between simulation steps.
//
type Chip struct {
	ID   uuid.UUID
	Name string // instance name within its owner
	Kind string // name of the PartSpec it was built from
	In   Pins
	Out  Pins

	update Component // nil for composites
	parts  []*Chip
	conns  []*Connection
	owner  *Chip
}

// A Connection is a directed wire from an output capable pin (a part output
// or an input of the owner chip) to an input capable pin (a part input or an
// output of the owner chip).
//
type Connection struct {
	From *Pin
	To   *Pin
	// Waypoints are kept for editors. They have no effect on simulation.
	Waypoints []Point
}

// Point is a connection routing waypoint.
//
type Point struct {
	X, Y float64
}

func (cn *Connection) String() string {
	return cn.From.String() + " -> " + cn.To.String()
}

func newChip(name, kind string, inputs, outputs []string) (*Chip, error) {
	c := &Chip{
		ID:   uuid.New(),
		Name: name,
		Kind: kind,
		In:   make(Pins, len(inputs)),
		Out:  make(Pins, len(outputs)),
	}
	names := make(map[string]struct{}, len(inputs)+len(outputs))
	for _, ps := range []struct {
		names []string
		pins  Pins
		dir   Direction
	}{{inputs, c.In, Input}, {outputs, c.Out, Output}} {
		for i, n := range ps.names {
			if n == "" {
				return nil, errors.Errorf("%s: empty pin name", kind)
			}
			if _, ok := names[n]; ok {
				return nil, errors.Wrapf(ErrDuplicate, "%s: pin %s", kind, n)
			}
			names[n] = struct{}{}
			ps.pins[i] = newPin(c, n, i, ps.dir)
		}
	}
	return c, nil
}

// NewComposite returns a new composite chip with no parts.
//
func NewComposite(name, kind string, inputs, outputs []string) (*Chip, error) {
	return newChip(name, kind, inputs, outputs)
}

// IsPrimitive returns true if c is a primitive chip.
//
func (c *Chip) IsPrimitive() bool { return c.update != nil }

// Parts returns the sub-chips of c in declaration order.
//
func (c *Chip) Parts() []*Chip { return c.parts }

// Connections returns the connections of c in declaration order.
//
func (c *Chip) Connections() []*Connection { return c.conns }

// Owner returns the composite chip c is mounted in, or nil.
//
func (c *Chip) Owner() *Chip { return c.owner }

// Path returns the slash separated instance path of c from its root chip.
//
func (c *Chip) Path() string {
	var names []string
	for t := c; t != nil; t = t.owner {
		n := t.Name
		if n == "" {
			n = t.Kind
		}
		names = append(names, n)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/")
}

func findPin(ps Pins, name string) *Pin {
	for _, p := range ps {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Input returns the named input pin or nil.
//
func (c *Chip) Input(name string) *Pin { return findPin(c.In, name) }

// Output returns the named output pin or nil.
//
func (c *Chip) Output(name string) *Pin { return findPin(c.Out, name) }

// Part returns the named part or nil.
//
func (c *Chip) Part(name string) *Chip {
	for _, p := range c.parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Walk calls fn for c and every chip nested in it, depth first.
//
func (c *Chip) Walk(fn func(*Chip)) {
	fn(c)
	for _, p := range c.parts {
		p.Walk(fn)
	}
}

// contains returns true if sub is c or nested in c.
//
func (c *Chip) contains(sub *Chip) bool {
	if c == sub {
		return true
	}
	for _, p := range c.parts {
		if p.contains(sub) {
			return true
		}
	}
	return false
}

// AddPart mounts sub into c. If sub has no name, a unique one is generated
// from its kind.
//
// It fails if c is a primitive, if sub is already mounted, if the name is
// already taken, or if mounting would make a chip contain itself.
//
func (c *Chip) AddPart(sub *Chip) error {
	if sub == nil {
		return errors.New("nil part")
	}
	if c.IsPrimitive() {
		return errors.Wrap(ErrPrimitive, c.Path())
	}
	if sub.owner != nil {
		return errors.Wrapf(ErrMounted, "%s in %s", sub.Name, sub.owner.Path())
	}
	for t := c; t != nil; t = t.owner {
		if t == sub {
			return errors.Wrapf(ErrSelfContainment, "%s in %s", sub.Kind, c.Path())
		}
	}
	if sub.contains(c) {
		return errors.Wrapf(ErrSelfContainment, "%s in %s", sub.Kind, c.Path())
	}
	if sub.Name == "" {
		sub.Name = c.uniqueName(strings.ToLower(sub.Kind))
	} else if c.Part(sub.Name) != nil {
		return errors.Wrapf(ErrDuplicate, "part %s in %s", sub.Name, c.Path())
	}
	sub.owner = c
	c.parts = append(c.parts, sub)
	return nil
}

func (c *Chip) uniqueName(base string) string {
	if base == "" {
		base = "part"
	}
	for i := len(c.parts); ; i++ {
		n := base + strconv.Itoa(i)
		if c.Part(n) == nil {
			return n
		}
	}
}

// RemovePart unmounts sub from c and drops every connection touching it.
//
func (c *Chip) RemovePart(sub *Chip) error {
	i := 0
	for ; i < len(c.parts) && c.parts[i] != sub; i++ {
	}
	if i == len(c.parts) {
		return errors.Wrapf(ErrUnknownChip, "%v not a part of %s", sub, c.Path())
	}
	c.parts = append(c.parts[:i], c.parts[i+1:]...)
	conns := c.conns[:0]
	for _, cn := range c.conns {
		if cn.From.chip != sub && cn.To.chip != sub {
			conns = append(conns, cn)
		}
	}
	for i := len(conns); i < len(c.conns); i++ {
		c.conns[i] = nil
	}
	c.conns = conns
	sub.owner = nil
	return nil
}

// Connect adds a connection from pin from to pin to.
//
// from must be an input of c or an output of one of its parts, and to an
// output of c or an input of one of its parts. A part may be connected to
// itself. Several connections may drive the same pin, in which case the one
// added last wins.
//
func (c *Chip) Connect(from, to *Pin) (*Connection, error) {
	if c.IsPrimitive() {
		return nil, errors.Wrap(ErrPrimitive, c.Path())
	}
	if from == nil || to == nil {
		return nil, errors.Wrap(ErrUnknownPin, "nil pin")
	}
	if !(from.chip == c && from.Dir == Input || from.chip.owner == c && from.Dir == Output) {
		return nil, errors.Wrapf(ErrPinRole, "%s: %s cannot be a connection source", c.Path(), from)
	}
	if !(to.chip == c && to.Dir == Output || to.chip.owner == c && to.Dir == Input) {
		return nil, errors.Wrapf(ErrPinRole, "%s: %s cannot be a connection destination", c.Path(), to)
	}
	cn := &Connection{From: from, To: to}
	c.conns = append(c.conns, cn)
	return cn, nil
}

// Disconnect removes the given connection. It returns false if cn is not a
// connection of c.
//
func (c *Chip) Disconnect(cn *Connection) bool {
	for i, x := range c.conns {
		if x == cn {
			c.conns = append(c.conns[:i], c.conns[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Chip) String() string {
	if c.Name == "" {
		return c.Kind
	}
	return c.Name + ":" + c.Kind
}
