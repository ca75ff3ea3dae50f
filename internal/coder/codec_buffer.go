// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"go.e43.eu/eswire/internal/errors"
	"go.e43.eu/eswire/internal/tags"
	"go.e43.eu/eswire/values"
)

func errCorruptTag(d *decoder) error {
	return errors.CorruptInputError{Offset: d.off - 1, Reason: "unrecognised tag"}
}

func (e *encoder) encodeArrayBuffer(b *values.ArrayBuffer) {
	e.writeTag(tags.ArrayBuffer)
	e.writeVarint(uint64(len(b.Data)))
	e.writeBytes(b.Data)
}

// Views serialise their entire backing buffer, not just the window. Two
// views over one buffer therefore each carry a full copy of its bytes, but
// a view appearing twice dedups through the referrable table, and the
// offset/length relationship survives the round trip.

func (e *encoder) encodeView(v *values.View) error {
	if v.Buffer == nil || v.ByteOffset < 0 || v.Len < 0 ||
		v.ByteOffset+v.Len*v.Kind.ElemSize() > len(v.Buffer.Data) {
		return errors.NotSerializableError{Value: v}
	}

	e.writeTag(tags.ViewTag(v.Kind))
	e.writeVarint(uint64(len(v.Buffer.Data)))
	e.writeVarint(uint64(v.ByteOffset))
	e.writeVarint(uint64(v.Len))
	e.writeBytes(v.Buffer.Data)
	return nil
}

// decodeBuffer covers the whole buffer band: raw buffers and element views.
func (d *decoder) decodeBuffer(t tags.Tag) (any, error) {
	if t == tags.ArrayBuffer {
		n, err := d.readLength()
		if err != nil {
			return nil, err
		}
		data, err := d.readBytes(n)
		if err != nil {
			return nil, err
		}
		b := &values.ArrayBuffer{Data: append([]byte(nil), data...)}
		d.refs = append(d.refs, b)
		return b, nil
	}

	kind, ok := t.ViewKind()
	if !ok {
		return nil, errCorruptTag(d)
	}

	bufLen, err := d.readLength()
	if err != nil {
		return nil, err
	}
	byteOffset, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	count, err := d.readVarint()
	if err != nil {
		return nil, err
	}

	// The window must lie within the backing buffer
	size := uint64(kind.ElemSize())
	if byteOffset > uint64(bufLen) || count > (uint64(bufLen)-byteOffset)/size {
		return nil, d.corrupt("view window outside its buffer")
	}

	data, err := d.readBytes(bufLen)
	if err != nil {
		return nil, err
	}

	v := &values.View{
		Kind:       kind,
		Buffer:     &values.ArrayBuffer{Data: append([]byte(nil), data...)},
		ByteOffset: int(byteOffset),
		Len:        int(count),
	}
	d.refs = append(d.refs, v)
	return v, nil
}
