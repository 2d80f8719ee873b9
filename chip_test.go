// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim_test

import (
	"testing"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/chiplib"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposite(t *testing.T, name, inputs, outputs string) *chipsim.Chip {
	t.Helper()
	c, err := chipsim.NewComposite(name, "TEST", chipsim.IO(inputs), chipsim.IO(outputs))
	require.NoError(t, err)
	return c
}

func mustPart(t *testing.T, c *chipsim.Chip, spec *chipsim.PartSpec, name string) *chipsim.Chip {
	t.Helper()
	p, err := spec.NewChip(name)
	require.NoError(t, err)
	require.NoError(t, c.AddPart(p))
	return p
}

func TestChip_errors(t *testing.T) {
	data := []struct {
		name    string
		in, out []string
		err     string
	}{
		{"dup_in", []string{"a", "a"}, nil, "DUP: pin a: duplicate name"},
		{"dup_io", []string{"a"}, []string{"a"}, "DUP: pin a: duplicate name"},
		{"empty", []string{""}, nil, "DUP: empty pin name"},
		{"ok", []string{"a"}, []string{"b"}, ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := chipsim.NewComposite("x", "DUP", d.in, d.out)
			if err == nil && d.err != "" || err != nil && err.Error() != d.err {
				t.Errorf("Got error %q, expected %q", err, d.err)
			}
		})
	}
}

func TestChip_Connect_roles(t *testing.T) {
	c := newComposite(t, "top", "a", "out")
	n := mustPart(t, c, chiplib.Not, "n")
	other := newComposite(t, "other", "x", "y")
	inner := newComposite(t, "inner", "i", "o")
	require.NoError(t, c.AddPart(inner))
	deep := mustPart(t, inner, chiplib.Not, "deep")

	_, err := c.Connect(c.Input("a"), n.Input("in"))
	assert.NoError(t, err)
	_, err = c.Connect(n.Output("out"), c.Output("out"))
	assert.NoError(t, err)
	_, err = c.Connect(n.Output("out"), n.Input("in"))
	assert.NoError(t, err, "self connection")
	_, err = c.Connect(c.Input("a"), c.Output("out"))
	assert.NoError(t, err, "pass through")

	bad := []struct {
		name     string
		from, to *chipsim.Pin
	}{
		{"part_input_source", n.Input("in"), c.Output("out")},
		{"own_output_source", c.Output("out"), n.Input("in")},
		{"own_input_dest", n.Output("out"), c.Input("a")},
		{"part_output_dest", c.Input("a"), n.Output("out")},
		{"foreign_chip", other.Input("x"), n.Input("in")},
		{"grandchild", deep.Output("out"), c.Output("out")},
	}
	for _, d := range bad {
		t.Run(d.name, func(t *testing.T) {
			_, err := c.Connect(d.from, d.to)
			assert.Equal(t, chipsim.ErrPinRole, errors.Cause(err))
		})
	}

	_, err = c.Connect(nil, n.Input("in"))
	assert.Equal(t, chipsim.ErrUnknownPin, errors.Cause(err))

	_, err = n.Connect(n.Input("in"), n.Output("out"))
	assert.Equal(t, chipsim.ErrPrimitive, errors.Cause(err))
}

func TestChip_AddPart(t *testing.T) {
	x := newComposite(t, "x", "", "")
	y := newComposite(t, "y", "", "")
	z := newComposite(t, "z", "", "")

	assert.Equal(t, chipsim.ErrSelfContainment, errors.Cause(x.AddPart(x)))
	require.NoError(t, x.AddPart(y))
	assert.Same(t, x, y.Owner())
	assert.Equal(t, "x/y", y.Path())

	// y is inside x: x cannot go inside y, even indirectly.
	assert.Equal(t, chipsim.ErrSelfContainment, errors.Cause(y.AddPart(x)))
	require.NoError(t, y.AddPart(z))
	assert.Equal(t, chipsim.ErrSelfContainment, errors.Cause(z.AddPart(x)))

	other := newComposite(t, "other", "", "")
	assert.Equal(t, chipsim.ErrMounted, errors.Cause(other.AddPart(y)))

	n, err := chiplib.Not.NewChip("y")
	require.NoError(t, err)
	assert.Equal(t, chipsim.ErrDuplicate, errors.Cause(x.AddPart(n)))
	assert.Equal(t, chipsim.ErrPrimitive, errors.Cause(n.AddPart(other)))

	// generated names
	a, err := chiplib.Not.NewChip("")
	require.NoError(t, err)
	b, err := chiplib.Not.NewChip("")
	require.NoError(t, err)
	require.NoError(t, other.AddPart(a))
	require.NoError(t, other.AddPart(b))
	assert.Equal(t, "not0", a.Name)
	assert.Equal(t, "not1", b.Name)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestChip_RemovePart(t *testing.T) {
	c := newComposite(t, "top", "a", "out")
	n0 := mustPart(t, c, chiplib.Not, "n0")
	n1 := mustPart(t, c, chiplib.Not, "n1")
	for _, w := range []string{"a -> n0.in", "n0.out -> n1.in", "n1.out -> out"} {
		_, err := c.ConnectWire(w)
		require.NoError(t, err)
	}
	require.Len(t, c.Connections(), 3)

	require.NoError(t, c.RemovePart(n0))
	assert.Nil(t, n0.Owner())
	assert.Equal(t, []*chipsim.Chip{n1}, c.Parts())
	require.Len(t, c.Connections(), 1)
	assert.Equal(t, "n1.out -> top.out", c.Connections()[0].String())

	assert.Equal(t, chipsim.ErrUnknownChip, errors.Cause(c.RemovePart(n0)))

	// removed parts can be mounted again.
	require.NoError(t, c.AddPart(n0))
}

func TestChip_Disconnect(t *testing.T) {
	c := newComposite(t, "top", "a", "out")
	cn, err := c.Connect(c.Input("a"), c.Output("out"))
	require.NoError(t, err)
	assert.True(t, c.Disconnect(cn))
	assert.False(t, c.Disconnect(cn))
	assert.Empty(t, c.Connections())
}

func TestChip_ConnectWire(t *testing.T) {
	c := newComposite(t, "top", "a[4], sel", "out[4]")
	mustPart(t, c, chiplib.Not16, "n")

	conns, err := c.ConnectWire("a[0..3] -> n.in[4..7]")
	require.NoError(t, err)
	require.Len(t, conns, 4)
	assert.Equal(t, "top.a[2] -> n.in[6]", conns[2].String())

	conns, err = c.ConnectWire("sel -> n.in[0..3]")
	require.NoError(t, err)
	assert.Len(t, conns, 4)

	bad := []struct {
		wire string
		err  error
	}{
		{"a[0..3] -> n.in[0..2]", nil},
		{"a[0] -> x.in", chipsim.ErrUnknownChip},
		{"a[0] -> n.typo", chipsim.ErrUnknownPin},
		{"a[0..1] -> n.out[0..1]", chipsim.ErrPinRole},
		{"a[0", nil},
	}
	for _, d := range bad {
		t.Run(d.wire, func(t *testing.T) {
			n := len(c.Connections())
			_, err := c.ConnectWire(d.wire)
			require.Error(t, err)
			if d.err != nil {
				assert.Equal(t, d.err, errors.Cause(err))
			}
			assert.Len(t, c.Connections(), n, "failed wire must not leave connections behind")
		})
	}

	p, err := c.Pin("n.out[3]")
	require.NoError(t, err)
	assert.Equal(t, "n.out[3]", p.String())
	_, err = c.Pin("n.out[0..3]")
	assert.Error(t, err)
}

func TestPartSpec_self_containment(t *testing.T) {
	a := &chipsim.PartSpec{Name: "A", Inputs: chipsim.IO("in"), Outputs: chipsim.IO("out")}
	a.Parts = []chipsim.Part{{Name: "self", Spec: a}}
	_, err := a.NewChip("")
	assert.Equal(t, chipsim.ErrSelfContainment, errors.Cause(err))

	x := &chipsim.PartSpec{Name: "X"}
	y := &chipsim.PartSpec{Name: "Y", Parts: []chipsim.Part{{Name: "x", Spec: x}}}
	x.Parts = []chipsim.Part{{Name: "y", Spec: y}}
	_, err = y.NewChip("")
	assert.Equal(t, chipsim.ErrSelfContainment, errors.Cause(err))

	// the same spec used twice side by side is fine.
	twice := &chipsim.PartSpec{Name: "TWICE", Parts: []chipsim.Part{{Spec: chiplib.Not}, {Spec: chiplib.Not}}}
	c, err := twice.NewChip("")
	require.NoError(t, err)
	assert.Len(t, c.Parts(), 2)
}

func TestPartSpec_errors(t *testing.T) {
	prim := &chipsim.PartSpec{
		Name:  "BAD",
		Mount: func(*chipsim.Socket) chipsim.Component { return nil },
		Parts: []chipsim.Part{{Spec: chiplib.Not}},
	}
	_, err := prim.NewChip("")
	assert.Equal(t, chipsim.ErrPrimitive, errors.Cause(err))

	noSpec := &chipsim.PartSpec{Name: "NOSPEC", Parts: []chipsim.Part{{Name: "x"}}}
	_, err = noSpec.NewChip("")
	assert.Equal(t, chipsim.ErrUnknownChip, errors.Cause(err))

	// a nil component is a no-op primitive.
	nop := &chipsim.PartSpec{Name: "NOP", Outputs: chipsim.IO("out"), Mount: func(*chipsim.Socket) chipsim.Component { return nil }}
	c, err := nop.NewChip("")
	require.NoError(t, err)
	assert.True(t, c.IsPrimitive())
	cc, err := chipsim.NewCircuit(c)
	require.NoError(t, err)
	cc.Step()
	assert.False(t, c.Out[0].State)
}

func TestLibrary(t *testing.T) {
	l, err := chipsim.NewLibrary(chiplib.Not, chiplib.And)
	require.NoError(t, err)
	assert.Equal(t, []string{"AND", "NOT"}, l.Names())
	assert.Equal(t, chipsim.ErrDuplicate, errors.Cause(l.Register(chiplib.Not)))
	assert.Error(t, l.Register(&chipsim.PartSpec{}))

	c, err := l.New("AND", "g")
	require.NoError(t, err)
	assert.Equal(t, "g:AND", c.String())
	_, err = l.New("NOPE", "")
	assert.Equal(t, chipsim.ErrUnknownChip, errors.Cause(err))
	s, ok := l.Spec("NOT")
	assert.True(t, ok)
	assert.Same(t, chiplib.Not, s)
}

func TestPins_Int64(t *testing.T) {
	c := newComposite(t, "top", "a[8]", "")
	c.In.SendInt64(0xa5)
	assert.Equal(t, int64(0xa5), c.In.Int64())
	assert.True(t, c.In[0].State)
	assert.False(t, c.In[1].State)
	assert.True(t, c.In[7].Set)
}
