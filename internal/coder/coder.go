// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package coder implements the eswire encoder and decoder.
//
// Both are recursive procedures driven by a single tag switch. The only
// subtlety is the referrable table ordering: the encoder appends an
// identity-bearing value to its table before recursing into its children,
// and the decoder appends the empty shell of a composite before filling it.
// That ordering is what makes cycles and shared sub-structure round-trip.
package coder

import (
	eswireinterfaces "go.e43.eu/eswire/interfaces"
	"go.e43.eu/eswire/internal/errors"
)

// MaxExtensions is the number of extensions a single codec accepts.
const MaxExtensions = 128

type Coder struct {
	exts   []eswireinterfaces.Extension
	byName map[string]eswireinterfaces.Extension
}

var _ eswireinterfaces.Codec = &Coder{}

// NewCoder constructs a codec over the given extensions. The extension list
// is validated here, once; encode and decode calls assume it is sound.
func NewCoder(exts []eswireinterfaces.Extension) (*Coder, error) {
	if len(exts) > MaxExtensions {
		return nil, errors.ErrTooManyExtensions
	}

	cr := &Coder{
		exts:   exts,
		byName: make(map[string]eswireinterfaces.Extension, len(exts)),
	}
	for _, ext := range exts {
		name := ext.Name()
		if name == "" {
			return nil, errors.ErrEmptyExtensionName
		}
		if _, dup := cr.byName[name]; dup {
			return nil, errors.DuplicateExtensionError{Name: name}
		}
		cr.byName[name] = ext
	}
	return cr, nil
}

// matchExtension returns the first registered extension accepting v.
func (cr *Coder) matchExtension(v any) (eswireinterfaces.Extension, bool) {
	for _, ext := range cr.exts {
		if ext.Accepts(v) {
			return ext, true
		}
	}
	return nil, false
}

func (cr *Coder) Encode(v any) ([]byte, error) {
	return cr.EncodeContext(v, nil)
}

func (cr *Coder) EncodeContext(v any, ctx any) ([]byte, error) {
	e := encoderPool.Get().(*encoder)
	e.reset(cr, ctx)
	err := e.encodeValue(v)

	var out []byte
	if err == nil {
		out = append([]byte(nil), e.buf...)
	}
	e.release()
	return out, err
}

func (cr *Coder) Decode(buf []byte) (any, error) {
	return cr.DecodeContext(buf, nil)
}

func (cr *Coder) DecodeContext(buf []byte, ctx any) (any, error) {
	d := decoderPool.Get().(*decoder)
	d.reset(cr, buf, ctx)
	v, err := d.decodeValue()
	if err == nil && d.off != len(buf) {
		err = errors.CorruptInputError{Offset: d.off, Reason: "trailing bytes after value"}
	}
	d.release()
	if err != nil {
		return nil, err
	}
	return v, nil
}
