// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import "math"

// DefaultTimeStep is the virtual time increment per simulation step.
//
const DefaultTimeStep = 0.01

// MaxFrequency is the highest clock frequency selector.
//
const MaxFrequency = 3

// Clock is the virtual time of a Circuit. It is advanced by a fixed increment
// once per step by the Circuit that owns it; components can only read it.
//
type Clock struct {
	steps uint64
	dt    float64
}

// Time returns the current virtual time.
//
func (c *Clock) Time() float64 { return float64(c.steps) * c.dt }

// Steps returns the number of time increments since the clock started.
//
func (c *Clock) Steps() uint64 { return c.steps }

// IsHigh returns the state of a square wave clock signal at the current time
// for the given frequency selector. See ClockHigh.
//
func (c *Clock) IsHigh(freq int) bool { return ClockHigh(c.Time(), freq) }

func (c *Clock) advance() { c.steps++ }

// ClockHigh returns the state at time t of a square wave with a 50% duty
// cycle. Its period is 1 for freq 0 and each higher selector halves it.
// freq is clamped to [0, MaxFrequency].
//
func ClockHigh(t float64, freq int) bool {
	if freq < 0 {
		freq = 0
	} else if freq > MaxFrequency {
		freq = MaxFrequency
	}
	period := 1 / float64(uint(1)<<uint(freq))
	return math.Mod(t, period) >= period/2
}
