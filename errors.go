// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package chipsim

import "github.com/pkg/errors"

// Construction and editing errors. Functions in this package wrap them with
// context; use errors.Cause to test for a specific one.
//
var (
	ErrSelfContainment = errors.New("chip contains itself")
	ErrUnknownChip     = errors.New("unknown chip")
	ErrUnknownPin      = errors.New("unknown pin")
	ErrPinRole         = errors.New("invalid connection endpoint")
	ErrMounted         = errors.New("chip already mounted")
	ErrDuplicate       = errors.New("duplicate name")
	ErrPrimitive       = errors.New("primitive chips have no parts")
)
