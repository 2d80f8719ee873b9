// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"

	"github.com/pkg/errors"
)

// Ref is a reference to one pin or a range of pins of a chip or of one of its
// parts:
//
//	pin          // chip pin
//	pin[2]       // chip bus pin
//	part.pin     // part pin
//	part.bus[0..3]
//
type Ref struct {
	Part  string // empty for the chip's own pins
	Pin   string
	Start int
	End   int
	Kind  RefKind
	Pos   int
}

// RefKind tells how a Ref addresses pins.
//
type RefKind int

// Ref kinds.
//
const (
	RefPin RefKind = iota
	RefIndex
	RefRange
)

// Names returns the individual pin names referenced by r, without the part
// prefix.
//
func (r Ref) Names() []string {
	switch r.Kind {
	case RefIndex:
		return []string{BusPinName(r.Pin, r.Start)}
	case RefRange:
		step := 1
		if r.End < r.Start {
			step = -1
		}
		out := make([]string, 0, (r.End-r.Start)*step+1)
		for i := r.Start; ; i += step {
			out = append(out, BusPinName(r.Pin, i))
			if i == r.End {
				break
			}
		}
		return out
	}
	return []string{r.Pin}
}

func (r Ref) String() string {
	var s string
	if r.Part != "" {
		s = r.Part + "."
	}
	s += r.Pin
	switch r.Kind {
	case RefIndex:
		s += "[" + strconv.Itoa(r.Start) + "]"
	case RefRange:
		s += "[" + strconv.Itoa(r.Start) + ".." + strconv.Itoa(r.End) + "]"
	}
	return s
}

// MaxBusWidth is the largest number of pins in a bus. Pin indexes range from 0
// to MaxBusWidth-1.
//
const MaxBusWidth = 1 << 16

// BusPinName returns the name of the i-th pin of a bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

type parser struct {
	input string
	l     *Lexer
	i     Item
}

func newParser(input string) *parser {
	p := &parser{input: input, l: NewLexer(input)}
	p.i = p.l.Lex()
	return p
}

func (p *parser) advance() { p.i = p.l.Lex() }

func (p *parser) errorf(format string, args ...interface{}) error {
	args = append([]interface{}{p.input, p.i.Pos + 1}, args...)
	return errors.Errorf("in %q at pos %d: "+format, args...)
}

// integer parses an Int token in the range [0, limit].
func (p *parser) integer(what string, limit int) (int, error) {
	if p.i.Type != Int {
		return 0, p.errorf("expected %v, got %v", Int, p.i)
	}
	s := p.i.Value.(string)
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, p.errorf("%s %s out of range (max %d)", what, s, limit)
	}
	p.advance()
	return n, nil
}

func (p *parser) expect(t Type) (Item, error) {
	i := p.i
	if i.Type != t {
		return i, p.errorf("expected %v, got %v", t, i)
	}
	p.advance()
	return i, nil
}

// ParseIO parses a pin list and returns individual pin names in a slice,
// expanding bus declarations. For example:
//
//	ParseIO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIO(s string) ([]string, error) {
	var out []string
	p := newParser(s)
	if p.i.Type == EOF {
		return nil, nil
	}
	for {
		id, err := p.expect(Ident)
		if err != nil {
			return nil, err
		}
		name := id.Value.(string)
		if p.i.Type == BracketOpen {
			p.advance()
			n, err := p.integer("bus width", MaxBusWidth)
			if err != nil {
				return nil, err
			}
			if _, err = p.expect(BracketClose); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				out = append(out, BusPinName(name, i))
			}
		} else {
			out = append(out, name)
		}
		switch p.i.Type {
		case EOF:
			return out, nil
		case Comma:
			p.advance()
		default:
			return nil, p.errorf("expected ',' or end of input, got %v", p.i)
		}
	}
}

func (p *parser) ref() (Ref, error) {
	r := Ref{Pos: p.i.Pos}
	id, err := p.expect(Ident)
	if err != nil {
		return r, err
	}
	r.Pin = id.Value.(string)
	if p.i.Type == Dot {
		p.advance()
		if id, err = p.expect(Ident); err != nil {
			return r, err
		}
		r.Part, r.Pin = r.Pin, id.Value.(string)
	}
	if p.i.Type != BracketOpen {
		return r, nil
	}
	p.advance()
	n, err := p.integer("pin index", MaxBusWidth-1)
	if err != nil {
		return r, err
	}
	r.Kind, r.Start = RefIndex, n
	if p.i.Type == Range {
		p.advance()
		if n, err = p.integer("pin index", MaxBusWidth-1); err != nil {
			return r, err
		}
		r.Kind, r.End = RefRange, n
	}
	_, err = p.expect(BracketClose)
	return r, err
}

// ParseRef parses a single pin reference.
//
func ParseRef(s string) (Ref, error) {
	p := newParser(s)
	r, err := p.ref()
	if err != nil {
		return r, err
	}
	if p.i.Type != EOF {
		return r, p.errorf("unexpected %v", p.i)
	}
	return r, nil
}

// ParseWire parses a wire description "from -> to" where from and to are pin
// references.
//
func ParseWire(s string) (from, to Ref, err error) {
	p := newParser(s)
	if from, err = p.ref(); err != nil {
		return
	}
	if _, err = p.expect(Arrow); err != nil {
		return
	}
	if to, err = p.ref(); err != nil {
		return
	}
	if p.i.Type != EOF {
		err = p.errorf("unexpected %v", p.i)
	}
	return
}

// Pair is a single pin to pin connection. Both references are of kind RefPin.
//
type Pair struct {
	From Ref
	To   Ref
}

// Expand expands a wire into single pin pairs. Ranges must either have the
// same width on both sides, or the source must be a single pin fanning out to
// every destination pin.
//
func Expand(from, to Ref) ([]Pair, error) {
	fs, ts := from.Names(), to.Names()
	if len(fs) != len(ts) && len(fs) != 1 {
		return nil, errors.Errorf("pin count mismatch in wire %v -> %v", from, to)
	}
	out := make([]Pair, len(ts))
	for i, t := range ts {
		f := fs[0]
		if len(fs) > 1 {
			f = fs[i]
		}
		out[i] = Pair{
			From: Ref{Part: from.Part, Pin: f, Pos: from.Pos},
			To:   Ref{Part: to.Part, Pin: t, Pos: to.Pos},
		}
	}
	return out, nil
}
