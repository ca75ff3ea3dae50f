// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"go.e43.eu/eswire/internal/tags"
	"go.e43.eu/eswire/values"
)

// Containers follow one shape: tag, varint count, then the contents encoded
// recursively. On decode the empty shell is appended to the referrable table
// before any child is touched, so children may refer back to it.

func (e *encoder) encodeArray(a *values.Array) error {
	e.writeTag(tags.Array)
	e.writeVarint(uint64(len(a.Elems)))
	for _, el := range a.Elems {
		if err := e.encodeValue(el); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeArray() (*values.Array, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}

	a := &values.Array{Elems: make([]any, 0, n)}
	d.refs = append(d.refs, a)
	for i := 0; i < n; i++ {
		el, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		a.Elems = append(a.Elems, el)
	}
	return a, nil
}

// Record keys are written as full tagged strings; the decoder skips the tag
// byte before reading each key's length. Both sides must keep this
// convention for wire compatibility.

func (e *encoder) encodeObject(o *values.Object) error {
	keys := o.Keys()
	e.writeTag(tags.Object)
	e.writeVarint(uint64(len(keys)))
	for _, k := range keys {
		e.writeString(k)
		v, _ := o.Get(k)
		if err := e.encodeValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeObject() (*values.Object, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}

	o := values.NewObject()
	d.refs = append(d.refs, o)
	for i := 0; i < n; i++ {
		k, err := d.readTaggedString()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		o.Set(k, v)
	}
	return o, nil
}

func (e *encoder) encodeSet(s *values.Set) error {
	elems := s.Elems()
	e.writeTag(tags.Set)
	e.writeVarint(uint64(len(elems)))
	for _, el := range elems {
		if err := e.encodeValue(el); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeSet() (*values.Set, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}

	s := new(values.Set)
	d.refs = append(d.refs, s)
	for i := 0; i < n; i++ {
		el, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		s.Add(el)
	}
	return s, nil
}

func (e *encoder) encodeMap(m *values.Map) error {
	e.writeTag(tags.Map)
	e.writeVarint(uint64(m.Len()))
	for i := 0; i < m.Len(); i++ {
		k, v := m.Entry(i)
		if err := e.encodeValue(k); err != nil {
			return err
		}
		if err := e.encodeValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) decodeMap() (*values.Map, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}

	m := values.NewMap()
	d.refs = append(d.refs, m)
	for i := 0; i < n; i++ {
		k, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}
