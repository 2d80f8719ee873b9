// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package chipfile loads composite chip templates from YAML circuit library
// files.
//
// A library file lists chips by name together with their pins, parts and
// wires:
//
//	chips:
//	  - name: XOR
//	    inputs: a, b
//	    outputs: out
//	    parts:
//	      - {name: nand, chip: NAND}
//	      - {name: w0, chip: NAND}
//	    wires:
//	      - a -> nand.a
//	      - nand.out -> w0.b
//
// Parts may reference chips defined anywhere in the same file or already
// registered in the target library.
//
package chipfile

import (
	"os"
	"strings"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/internal/depgraph"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// File is the content of a circuit library file.
//
type File struct {
	Chips []Chip `yaml:"chips"`
}

// Chip is a composite chip template.
//
type Chip struct {
	Name    string   `yaml:"name"`
	Inputs  string   `yaml:"inputs,omitempty"`
	Outputs string   `yaml:"outputs,omitempty"`
	Parts   []Part   `yaml:"parts,omitempty"`
	Wires   []string `yaml:"wires,omitempty"`
}

// Part is a named instance of a chip within a template.
//
type Part struct {
	Name string `yaml:"name,omitempty"`
	Chip string `yaml:"chip"`
}

// Parse decodes a library file. Unknown fields are rejected.
//
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse library")
	}
	return &f, nil
}

// Load reads and decodes the library file at path.
//
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load library")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

// Specs converts the templates in f to part specs, resolving part references
// against the file itself and lib. The returned specs are in dependency
// order: every spec comes after the specs of its parts.
//
// It fails with chipsim.ErrSelfContainment if templates contain each other,
// chipsim.ErrUnknownChip if a part references a chip defined nowhere, and
// chipsim.ErrDuplicate if a name is defined twice or shadows a chip of lib.
//
func (f *File) Specs(lib *chipsim.Library) ([]*chipsim.PartSpec, error) {
	defs := make(map[string]*Chip, len(f.Chips))
	specs := make(map[string]*chipsim.PartSpec, len(f.Chips))
	g := depgraph.New[string]()

	for i := range f.Chips {
		c := &f.Chips[i]
		if c.Name == "" {
			return nil, errors.Errorf("chip #%d has no name", i)
		}
		if _, ok := defs[c.Name]; ok {
			return nil, errors.Wrapf(chipsim.ErrDuplicate, "chip %s", c.Name)
		}
		if lib != nil {
			if _, ok := lib.Spec(c.Name); ok {
				return nil, errors.Wrapf(chipsim.ErrDuplicate, "chip %s shadows a library chip", c.Name)
			}
		}
		in, err := chipsim.ParseIO(c.Inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "%s inputs", c.Name)
		}
		out, err := chipsim.ParseIO(c.Outputs)
		if err != nil {
			return nil, errors.Wrapf(err, "%s outputs", c.Name)
		}
		defs[c.Name] = c
		specs[c.Name] = &chipsim.PartSpec{Name: c.Name, Inputs: in, Outputs: out, Wires: c.Wires}
		g.AddNode(c.Name)
	}

	for _, c := range f.Chips {
		spec := specs[c.Name]
		for _, p := range c.Parts {
			if p.Chip == c.Name {
				return nil, errors.Wrapf(chipsim.ErrSelfContainment, "%s", c.Name)
			}
			ps, ok := specs[p.Chip]
			if ok {
				g.AddEdge(c.Name, p.Chip)
			} else if lib != nil {
				ps, ok = lib.Spec(p.Chip)
			}
			if !ok {
				return nil, errors.Wrapf(chipsim.ErrUnknownChip, "%s in %s", p.Chip, c.Name)
			}
			spec.Parts = append(spec.Parts, chipsim.Part{Name: p.Name, Spec: ps})
		}
	}

	if cycles := g.Cycles(); len(cycles) > 0 {
		var names []string
		for _, n := range g.Nodes() {
			if cycles.Has(n) {
				names = append(names, n)
			}
		}
		return nil, errors.Wrap(chipsim.ErrSelfContainment, strings.Join(names, ", "))
	}

	order := g.Sort()
	out := make([]*chipsim.PartSpec, len(order))
	for i, n := range order {
		out[i] = specs[n]
	}
	return out, nil
}

// Register converts the templates in f and registers them into lib.
//
func (f *File) Register(lib *chipsim.Library) error {
	specs, err := f.Specs(lib)
	if err != nil {
		return err
	}
	return lib.Register(specs...)
}
