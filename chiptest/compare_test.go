// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiptest_test

import (
	"testing"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/chiplib"
	"github.com/db47h/chipsim/chiptest"
)

func TestComparePart(t *testing.T) {
	notNand := &chipsim.PartSpec{
		Name:    "NOTNAND",
		Inputs:  chipsim.IO("in"),
		Outputs: chipsim.IO("out"),
		Parts:   []chipsim.Part{{Name: "n", Spec: chiplib.Nand}},
		Wires:   []string{"in -> n.a", "in -> n.b", "n.out -> out"},
	}
	chiptest.ComparePart(t, 1, chiplib.Not, notNand)
}

func TestSetInputs_Outputs(t *testing.T) {
	c := chiptest.Run(t, chiplib.Xor)
	chiptest.SetInputs(c, []bool{true, false})
	c.Step()
	if out := chiptest.Outputs(c); len(out) != 1 || !out[0] {
		t.Fatalf("expected [true], got %v", out)
	}
}
