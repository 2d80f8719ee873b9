// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(clk *Clock)
}

var pinType = reflect.TypeOf((*Pin)(nil))

type pinField struct {
	index int    // field index
	name  string // pin or bus name
	bus   int    // bus width, 0 for single pins
	in    bool
}

// MakePart wraps an Updater into a primitive PartSpec. Every chip built from
// the returned spec gets its own zero value of t's type, with pin fields set.
//
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be of type *Pin, buses must be arrays of *Pin.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: strings.ToUpper(typ.Name()),
	}

	var fields []pinField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.in = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch {
		case ft == pinType:
		case ft.Kind() == reflect.Array && ft.Elem() == pinType:
			pf.bus = ft.Len()
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}

		names := []string{pf.name}
		if pf.bus > 0 {
			names = names[:0]
			for b := 0; b < pf.bus; b++ {
				names = append(names, pf.name+"["+strconv.Itoa(b)+"]")
			}
		}
		if pf.in {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
		fields = append(fields, pf)
	}
	sp.Mount = mountPart(typ, fields)
	return sp
}

func mountPart(typ reflect.Type, fields []pinField) MountFn {
	return func(s *Socket) Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, pf := range fields {
			fv := e.Field(pf.index)
			if pf.bus == 0 {
				fv.Set(reflect.ValueOf(s.Pin(pf.name)))
				continue
			}
			for i, p := range s.Bus(pf.name) {
				fv.Index(i).Set(reflect.ValueOf(p))
			}
		}
		return v.Interface().(Updater).Update
	}
}
