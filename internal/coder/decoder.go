// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"sync"
	"unicode/utf8"

	"go.e43.eu/eswire/internal/errors"
	"go.e43.eu/eswire/internal/tags"
)

var decoderPool = sync.Pool{
	New: func() interface{} {
		return new(decoder)
	},
}

type decoder struct {
	// Our coder
	cr *Coder

	// Per-call extension context
	ctx any

	// Input buffer and cursor
	buf []byte
	off int

	// Referrable table: decoded identity-bearing values, in the same
	// order the encoder assigned them
	refs []any
}

func (d *decoder) reset(cr *Coder, buf []byte, ctx any) {
	d.cr = cr
	d.ctx = ctx
	d.buf = buf
	d.off = 0
	d.refs = d.refs[:0]
}

func (d *decoder) release() {
	d.cr = nil
	d.ctx = nil
	d.buf = nil
	for i := range d.refs {
		d.refs[i] = nil
	}
	decoderPool.Put(d)
}

func (d *decoder) corrupt(reason string) error {
	return errors.CorruptInputError{Offset: d.off, Reason: reason}
}

func (d *decoder) readByte() (byte, error) {
	if d.off >= len(d.buf) {
		return 0, d.corrupt("unexpected end of input")
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

func (d *decoder) readTag() (tags.Tag, error) {
	b, err := d.readByte()
	return tags.Tag(b), err
}

// readVarint reads an unsigned LEB128 varint. It halts on the first byte
// with the high bit clear; running off the end of the input is a format
// error, as is a value that does not fit in 64 bits.
func (d *decoder) readVarint() (uint64, error) {
	var u uint64
	var shift uint
	for {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 1 {
			return 0, d.corrupt("varint overflows 64 bits")
		}
		u |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return u, nil
		}
		shift += 7
		if shift > 63 {
			return 0, d.corrupt("varint overflows 64 bits")
		}
	}
}

// readLength reads a varint that counts bytes or elements still to come.
// Each counted item occupies at least one input byte, so any count beyond
// the remaining input is corrupt; checking here keeps allocations bounded
// by the input size.
func (d *decoder) readLength() (int, error) {
	u, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	if u > uint64(len(d.buf)-d.off) {
		return 0, d.corrupt("length exceeds remaining input")
	}
	return int(u), nil
}

func (d *decoder) readUint64() (uint64, error) {
	if len(d.buf)-d.off < 8 {
		return 0, d.corrupt("unexpected end of input")
	}
	b := d.buf[d.off : d.off+8]
	d.off += 8
	return uint64(b[0])<<56 |
		uint64(b[1])<<48 |
		uint64(b[2])<<40 |
		uint64(b[3])<<32 |
		uint64(b[4])<<24 |
		uint64(b[5])<<16 |
		uint64(b[6])<<8 |
		uint64(b[7]), nil
}

// readBytes returns n raw bytes as a window into the input; callers that
// retain the data must copy it.
func (d *decoder) readBytes(n int) ([]byte, error) {
	if n > len(d.buf)-d.off {
		return nil, d.corrupt("unexpected end of input")
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// readStringBody reads the varint length and UTF-8 payload of a string whose
// tag has already been consumed.
func (d *decoder) readStringBody() (string, error) {
	n, err := d.readLength()
	if err != nil {
		return "", err
	}
	b, err := d.readBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.CorruptInputError{Offset: d.off - n, Reason: "string is not valid UTF-8"}
	}
	return string(b), nil
}

// readTaggedString reads a full tagged string at a position where only a
// string is admissible (record keys, regexp parts, error fields, extension
// names). The leading tag byte is checked and skipped.
func (d *decoder) readTaggedString() (string, error) {
	t, err := d.readTag()
	if err != nil {
		return "", err
	}
	if t != tags.String {
		return "", errors.CorruptInputError{Offset: d.off - 1, Reason: "expected string tag"}
	}
	return d.readStringBody()
}

// decodeValue is the central dispatch of the decoder.
func (d *decoder) decodeValue() (any, error) {
	t, err := d.readTag()
	if err != nil {
		return nil, err
	}

	switch t {
	case tags.Null:
		return nil, nil
	case tags.Undefined:
		return undefinedValue, nil
	case tags.True:
		return true, nil
	case tags.False:
		return false, nil
	case tags.Backref:
		return d.decodeBackref()
	case tags.Number:
		return d.decodeNumber()
	case tags.Date:
		return d.decodeDate()
	case tags.RegExp:
		return d.decodeRegExp()
	case tags.String:
		return d.readStringBody()
	case tags.BigIntNeg, tags.BigIntPos:
		return d.decodeBigInt(t)
	case tags.Array:
		return d.decodeArray()
	case tags.Object:
		return d.decodeObject()
	case tags.Set:
		return d.decodeSet()
	case tags.Map:
		return d.decodeMap()
	}

	// Remaining tags are covered by their family bits
	switch {
	case t.IsExtension():
		return d.decodeExtension()
	case t.IsBuffer():
		return d.decodeBuffer(t)
	case t.IsError():
		return d.decodeError(t)
	default:
		return nil, errors.CorruptInputError{Offset: d.off - 1, Reason: "unrecognised tag"}
	}
}

func (d *decoder) decodeBackref() (any, error) {
	idx, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(d.refs)) {
		return nil, d.corrupt("back-reference beyond referrable table")
	}
	return d.refs[idx], nil
}
