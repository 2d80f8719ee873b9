// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib_test

import (
	"testing"

	"github.com/db47h/chipsim"
	cl "github.com/db47h/chipsim/chiplib"
	"github.com/db47h/chipsim/chiptest"
)

func TestDFF(t *testing.T) {
	c := chiptest.Run(t, cl.DFF)
	in, clk := c.Root().Input("in"), c.Root().Input("clk")
	out := c.Root().Output("out")

	for i, d := range []struct {
		in, clk, out bool
	}{
		{true, false, false},
		{true, true, true}, // rising edge
		{false, true, true},
		{false, false, true},
		{false, true, false}, // rising edge
		{true, false, false},
	} {
		in.State, clk.State = d.in, d.clk
		c.Step()
		if out.State != d.out {
			t.Fatalf("step %d: in=%v, clk=%v: expected out=%v, got %v", i, d.in, d.clk, d.out, out.State)
		}
	}
}

func TestDFF_clocked(t *testing.T) {
	spec := &chipsim.PartSpec{
		Name:    "CLOCKED",
		Inputs:  chipsim.IO("d"),
		Outputs: chipsim.IO("q"),
		Parts:   []chipsim.Part{{Name: "dff", Spec: cl.DFF}, {Name: "clk", Spec: cl.Clock}},
		Wires:   []string{"d -> dff.in", "clk.out -> dff.clk", "dff.out -> q"},
	}
	c := chiptest.Run(t, spec, chipsim.WithTimeStep(0.1))
	d, q := c.Root().Input("d"), c.Root().Output("q")

	d.State = true
	for i := 1; i <= 4; i++ {
		c.Step()
		if q.State {
			t.Fatalf("step %d: q latched before the clock edge", i)
		}
	}
	c.Step() // t = 0.5, rising edge
	if !q.State {
		t.Fatal("q did not latch on the rising edge")
	}
	d.State = false
	for i := 6; i <= 14; i++ {
		c.Step()
		if !q.State {
			t.Fatalf("step %d: q changed between edges", i)
		}
	}
	c.Step() // t = 1.5
	if q.State {
		t.Fatal("q did not latch on the second rising edge")
	}
}
