// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"go.e43.eu/eswire/internal/tags"
	"go.e43.eu/eswire/values"
)

// Errors are a kind-specific tag, tagged message and stack strings, then the
// cause value, with the undefined tag standing in when there is none. The
// decoder appends the shell before decoding the cause, so a cause chain may
// cycle back into the error itself.

func (e *encoder) encodeError(er *values.Error) error {
	e.writeTag(tags.ErrorTag(er.Kind))
	e.writeString(er.Message)
	e.writeString(er.Stack)
	if er.Cause == nil {
		e.writeTag(tags.Undefined)
		return nil
	}
	return e.encodeValue(er.Cause)
}

func (d *decoder) decodeError(t tags.Tag) (*values.Error, error) {
	kind, ok := t.ErrorKind()
	if !ok {
		return nil, errCorruptTag(d)
	}

	er := &values.Error{Kind: kind}
	d.refs = append(d.refs, er)

	var err error
	if er.Message, err = d.readTaggedString(); err != nil {
		return nil, err
	}
	if er.Stack, err = d.readTaggedString(); err != nil {
		return nil, err
	}

	cause, err := d.decodeValue()
	if err != nil {
		return nil, err
	}
	if _, isUndefined := cause.(values.Undefined); !isUndefined {
		er.Cause = cause
	}
	return er, nil
}
