// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package chiptest provides utility functions for testing chips.
//
package chiptest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/chipsim"
)

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

// Run builds a circuit around a chip instantiated from spec. It fails the
// test on error.
//
func Run(t testing.TB, spec *chipsim.PartSpec, opts ...chipsim.Option) *chipsim.Circuit {
	t.Helper()
	chip, err := spec.NewChip("")
	if err != nil {
		t.Fatal(err)
	}
	c, err := chipsim.NewCircuit(chip, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// SetInputs sets the root chip inputs of c to the given values.
//
func SetInputs(c *chipsim.Circuit, in []bool) {
	for i, p := range c.Root().In {
		p.State = in[i]
	}
}

// Outputs returns the output states of the root chip of c.
//
func Outputs(c *chipsim.Circuit) []bool {
	out := make([]bool, len(c.Root().Out))
	for i, p := range c.Root().Out {
		out[i] = p.State
	}
	return out
}

// ComparePart takes two part specs and compares their outputs given the same
// inputs. Both parts must have the same Input/Output interface.
//
// For each input combination, each circuit is stepped steps times before
// outputs are compared. Parts with up to 10 inputs are tested exhaustively,
// larger ones with random inputs.
//
func ComparePart(t *testing.T, steps int, part1, part2 *chipsim.PartSpec) {
	t.Helper()

	if steps < 1 {
		steps = 1
	}
	c1, c2 := Run(t, part1), Run(t, part2)
	r1, r2 := c1.Root(), c2.Root()

	// compare specs
	if len(r1.In) != len(r2.In) {
		t.Fatal("len(part1.Inputs) != len(part2.Inputs)")
	}
	if len(r1.Out) != len(r2.Out) {
		t.Fatal("len(part1.Outputs) != len(part2.Outputs)")
	}
	for i := range r1.In {
		if r1.In[i].Name != r2.In[i].Name {
			t.Fatalf("part1.Inputs[%d] = %q != part2.Inputs[%d] = %q", i, r1.In[i].Name, i, r2.In[i].Name)
		}
	}
	for i := range r1.Out {
		if r1.Out[i].Name != r2.Out[i].Name {
			t.Fatalf("part1.Outputs[%d] = %q != part2.Outputs[%d] = %q", i, r1.Out[i].Name, i, r2.Out[i].Name)
		}
	}

	inputs := make([]bool, len(r1.In))
	errString := func(o int, ex, got bool) string {
		var b strings.Builder
		for i, p := range r1.In {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", p.Name, inputs[i])
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), r1.Out[o].Name, ex, got)
	}

	check := func() {
		t.Helper()
		SetInputs(c1, inputs)
		SetInputs(c2, inputs)
		for i := 0; i < steps; i++ {
			c1.Step()
			c2.Step()
		}
		o1, o2 := Outputs(c1), Outputs(c2)
		for o := range o1 {
			if o1[o] != o2[o] {
				t.Fatal(errString(o, o1[o], o2[o]))
			}
		}
	}

	start := time.Now()
	if len(inputs) <= 10 {
		for i := 0; i < 1<<uint(len(inputs)); i++ {
			for bit := range inputs {
				inputs[bit] = i&(1<<uint(bit)) != 0
			}
			check()
		}
	} else {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for i := 0; i < 1024; i++ {
			for in := range inputs {
				inputs[in] = randBool(rnd)
			}
			check()
		}
	}
	elapsed := time.Since(start)
	t.Logf("%s vs %s: %d steps in %v", part1.Name, part2.Name, c1.Steps(), elapsed)
}
