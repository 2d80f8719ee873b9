// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chiplib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/chipsim"
	cl "github.com/db47h/chipsim/chiplib"
	"github.com/db47h/chipsim/chiptest"
)

func testGate(t *testing.T, gate *chipsim.PartSpec, result [][]bool) {
	t.Helper()
	c := chiptest.Run(t, gate)
	inputs := make([]bool, len(gate.Inputs))
	tot := 1 << uint(len(inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = (i & (1 << uint(bit))) != 0
		}
		chiptest.SetInputs(c, inputs)
		c.Step()
		for o, out := range chiptest.Outputs(c) {
			if exp := result[o][i]; exp != out {
				t.Errorf("%s %v = %v, got %v", gate.Name, inputs, exp, out)
			}
		}
	}
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		name   string
		gate   *chipsim.PartSpec
		result [][]bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", cl.Not, [][]bool{{true, false}}},
		{"BUFFER", cl.Buffer, [][]bool{{false, true}}},
		{"AND", cl.And, [][]bool{{false, false, false, true}}},
		{"NAND", cl.Nand, [][]bool{{true, true, true, false}}},
		{"OR", cl.Or, [][]bool{{false, true, true, true}}},
		{"NOR", cl.Nor, [][]bool{{true, false, false, false}}},
		{"XOR", cl.Xor, [][]bool{{false, true, true, false}}},
		{"XNOR", cl.Xnor, [][]bool{{true, false, false, true}}},
		{"TRUE", cl.True, [][]bool{{true}}},
		{"FALSE", cl.False, [][]bool{{false}}},
		{"MUX", cl.Mux, [][]bool{{false, false, false, true, true, false, true, true}}},
		{"DMUX", cl.DMux, [][]bool{{false, false, true, false}, {false, false, false, true}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

func TestInput16(t *testing.T) {
	var in, out int64
	top := &chipsim.PartSpec{
		Name: "IO16",
		Parts: []chipsim.Part{
			{Name: "o", Spec: cl.OutputN(16, func(n int64) { out = n })},
			{Name: "i", Spec: cl.InputN(16, func() int64 { return in })},
		},
		Wires: []string{"i.out[0..15] -> o.in[0..15]"},
	}
	c := chiptest.Run(t, top)
	in = 0x80a2
	c.Step()
	if out != in {
		t.Fatalf("Expected %x, got %x", in, out)
	}
}

func Test_gateN_builtin(t *testing.T) {
	td := []struct {
		gate *chipsim.PartSpec
		ctrl func(a, b int16) int16
	}{
		{cl.And16, func(a, b int16) int16 { return a & b }},
		{cl.Nand16, func(a, b int16) int16 { return ^(a & b) }},
		{cl.Or16, func(a, b int16) int16 { return a | b }},
		{cl.Nor16, func(a, b int16) int16 { return ^(a | b) }},
		{cl.Not16, func(a, b int16) int16 { return ^a }},
	}

	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			c := chiptest.Run(t, d.gate)
			in := c.Root().In
			f := func(x, y int16) bool {
				in[:16].SendInt64(int64(x))
				if len(in) > 16 {
					in[16:].SendInt64(int64(y))
				}
				c.Step()
				return int16(c.Root().Out.Int64()) == d.ctrl(x, y)
			}
			if err := quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestMux16(t *testing.T) {
	c := chiptest.Run(t, cl.Mux16)
	in := c.Root().In
	sel := c.Root().Input("sel")
	f := func(a, b int16, s bool) bool {
		in[:16].SendInt64(int64(a))
		in[16:32].SendInt64(int64(b))
		sel.State = s
		c.Step()
		exp := a
		if s {
			exp = b
		}
		return int16(c.Root().Out.Int64()) == exp
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestOrNWays(t *testing.T) {
	or4 := &chipsim.PartSpec{
		Name:    "myOr4Way",
		Inputs:  chipsim.IO("in[4]"),
		Outputs: chipsim.IO("out"),
		Parts:   []chipsim.Part{{Name: "o", Spec: cl.Or}, {Name: "o1", Spec: cl.Or}, {Name: "o2", Spec: cl.Or}},
		Wires: []string{
			"in[0] -> o1.a", "in[1] -> o1.b",
			"in[2] -> o2.a", "in[3] -> o2.b",
			"o1.out -> o.a", "o2.out -> o.b",
			"o.out -> out",
		},
	}
	chiptest.ComparePart(t, 1, cl.OrNWay(4), or4)
}

func TestAndNWays(t *testing.T) {
	and4 := &chipsim.PartSpec{
		Name:    "myAnd4Way",
		Inputs:  chipsim.IO("in[4]"),
		Outputs: chipsim.IO("out"),
		Parts:   []chipsim.Part{{Name: "o", Spec: cl.And}, {Name: "o1", Spec: cl.And}, {Name: "o2", Spec: cl.And}},
		Wires: []string{
			"in[0] -> o1.a", "in[1] -> o1.b",
			"in[2] -> o2.a", "in[3] -> o2.b",
			"o1.out -> o.a", "o2.out -> o.b",
			"o.out -> out",
		},
	}
	chiptest.ComparePart(t, 1, cl.AndNWay(4), and4)
}

func TestBuiltins(t *testing.T) {
	l := cl.NewLibrary()
	names := l.Names()
	if len(names) != len(cl.Builtins()) {
		t.Fatalf("got %d names for %d builtins", len(names), len(cl.Builtins()))
	}
	for _, n := range []string{"AND", "NOT", "CLOCK", "OR4WAY", "ADDER16"} {
		if _, ok := l.Spec(n); !ok {
			t.Errorf("%s not registered", n)
		}
	}
}
