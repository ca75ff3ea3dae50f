// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"go.e43.eu/eswire/internal/errors"
	"go.e43.eu/eswire/internal/tags"
)

// Extension values wire as the extension tag, the name as a full tagged
// string, then the encoded reduced value. The name-string sub-protocol lives
// here rather than in the main switch; the dispatcher only tests the family
// bit.

// encodeExtension handles any value outside the built-in universe. It is
// the fallthrough arm of encodeValue.
func (e *encoder) encodeExtension(v any) error {
	ext, ok := e.cr.matchExtension(v)
	if !ok {
		return errors.NotSerializableError{Value: v}
	}

	// Extension values are referrable on the original, un-reduced object
	if idx, found := e.lookupRef(v); found {
		e.writeTag(tags.Backref)
		e.writeVarint(uint64(idx))
		return nil
	}
	e.refs = append(e.refs, v)

	e.writeTag(tags.Extension)
	e.writeString(ext.Name())

	reduced, err := ext.ToReduced(v, e.ctx)
	if err != nil {
		return err
	}
	return e.encodeValue(reduced)
}

// decodeExtension mirrors the table ordering of the encode side: the slot is
// reserved before the reduced payload is decoded, and filled once the
// extension has materialised the value. Back-references from inside the
// payload to the slot itself cannot resolve to the value (it does not exist
// yet) and decode as nil; everything after it keeps its index.
func (d *decoder) decodeExtension() (any, error) {
	name, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}
	ext, ok := d.cr.byName[name]
	if !ok {
		return nil, errors.IncompatibleCodecError{Name: name}
	}

	slot := len(d.refs)
	d.refs = append(d.refs, nil)

	reduced, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	v, err := ext.FromReduced(reduced, d.ctx)
	if err != nil {
		return nil, err
	}
	d.refs[slot] = v
	return v, nil
}
