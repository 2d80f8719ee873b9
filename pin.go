// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import "strconv"

// Direction is the direction of a Pin relative to its chip.
//
type Direction int

// Pin directions.
//
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	}
	return "Direction(" + strconv.Itoa(int(d)) + ")"
}

// A Pin is a boolean signal endpoint owned by exactly one chip.
//
type Pin struct {
	Name  string
	Index int // index within the chip's inputs or outputs
	Dir   Direction
	State bool
	// Set is raised whenever the pin is driven during the current tick. It is
	// cleared at the start of every Circuit step.
	Set bool

	chip *Chip
}

func newPin(c *Chip, name string, index int, dir Direction) *Pin {
	return &Pin{Name: name, Index: index, Dir: dir, chip: c}
}

// Chip returns the chip that owns the pin.
//
func (p *Pin) Chip() *Chip { return p.chip }

// Recv returns the pin state.
//
func (p *Pin) Recv() bool { return p.State }

// Send sets the pin state and marks the pin as driven for this tick.
//
func (p *Pin) Send(v bool) {
	p.State = v
	p.Set = true
}

// String returns the pin path relative to its chip's owner, e.g. "not1.out".
//
func (p *Pin) String() string {
	if p.chip == nil || p.chip.Name == "" {
		return p.Name
	}
	return p.chip.Name + "." + p.Name
}

// BusPinName returns the name of the i-th pin of a bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// Pins is a bus. Pin 0 is the least significant bit.
//
type Pins []*Pin

// Int64 returns the bus state as an int64.
//
func (ps Pins) Int64() int64 {
	var out int64
	for bit, p := range ps {
		if p.State {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SendInt64 sets the bus state to the given value.
//
func (ps Pins) SendInt64(v int64) {
	for bit, p := range ps {
		p.Send(v&(1<<uint(bit)) != 0)
	}
}
