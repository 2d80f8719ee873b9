// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"sort"

	"github.com/pkg/errors"
)

// A Library maps chip kinds to their PartSpec. It is the registry through
// which editors and file loaders instantiate chips by name.
//
type Library struct {
	specs map[string]*PartSpec
}

// NewLibrary returns a library holding the given specs.
//
func NewLibrary(specs ...*PartSpec) (*Library, error) {
	l := &Library{specs: make(map[string]*PartSpec)}
	if err := l.Register(specs...); err != nil {
		return nil, err
	}
	return l, nil
}

// Register adds specs to the library. Names must be unique.
//
func (l *Library) Register(specs ...*PartSpec) error {
	for _, s := range specs {
		if s == nil || s.Name == "" {
			return errors.New("cannot register unnamed part spec")
		}
		if _, ok := l.specs[s.Name]; ok {
			return errors.Wrapf(ErrDuplicate, "part spec %s", s.Name)
		}
		l.specs[s.Name] = s
	}
	return nil
}

// Spec returns the spec registered under the given name.
//
func (l *Library) Spec(kind string) (*PartSpec, bool) {
	s, ok := l.specs[kind]
	return s, ok
}

// Names returns the sorted list of registered chip kinds.
//
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.specs))
	for n := range l.specs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// New instantiates a chip of the given kind.
//
func (l *Library) New(kind, name string) (*Chip, error) {
	s, ok := l.specs[kind]
	if !ok {
		return nil, errors.Wrap(ErrUnknownChip, kind)
	}
	return s.NewChip(name)
}
