// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"math"
	"math/big"
	"time"

	"go.e43.eu/eswire/internal/errors"
	"go.e43.eu/eswire/internal/tags"
	"go.e43.eu/eswire/values"
)

var undefinedValue = values.Undefined{}

// maxBigIntChunks caps big integer magnitude at 255 64-bit chunks, keeping
// the header fixed at two bytes.
const maxBigIntChunks = 255

func (d *decoder) decodeNumber() (float64, error) {
	u, err := d.readUint64()
	return math.Float64frombits(u), err
}

// Dates travel as floating milliseconds since the Unix epoch. Sub-millisecond
// precision is carried in the fraction; timestamps outside the
// int64-nanosecond range of time.Time are not representable.

func (e *encoder) encodeDate(t time.Time) {
	ms := float64(t.Unix())*1e3 + float64(t.Nanosecond())/1e6
	e.writeTag(tags.Date)
	e.writeDouble(ms)
}

func (d *decoder) decodeDate() (time.Time, error) {
	ms, err := d.decodeNumber()
	if err != nil {
		return time.Time{}, err
	}
	msInt, msFrac := math.Modf(ms)
	ns := int64(msInt)*int64(time.Millisecond) + int64(msFrac*float64(time.Millisecond))
	return time.Unix(0, ns).UTC(), nil
}

// Regular expressions are two inline strings, source then flags, each a full
// tagged string.

func (e *encoder) encodeRegExp(r values.RegExp) {
	e.writeTag(tags.RegExp)
	e.writeString(r.Source)
	e.writeString(r.Flags)
}

func (d *decoder) decodeRegExp() (values.RegExp, error) {
	source, err := d.readTaggedString()
	if err != nil {
		return values.RegExp{}, err
	}
	flags, err := d.readTaggedString()
	if err != nil {
		return values.RegExp{}, err
	}
	return values.RegExp{Source: source, Flags: flags}, nil
}

// Big integers are a sign tag, a one-byte chunk count, then that many
// big-endian 64-bit chunks, least significant chunk first. The input value
// is never mutated; the magnitude is taken through Bytes().

func (e *encoder) encodeBigInt(b *big.Int) error {
	t := tags.BigIntPos
	if b.Sign() < 0 {
		t = tags.BigIntNeg
	}

	mag := b.Bytes() // absolute value, big-endian
	n := (len(mag) + 7) / 8
	if n > maxBigIntChunks {
		return errors.BigIntTooLargeError{Value: b}
	}

	e.writeTag(t)
	e.writeByte(byte(n))
	for i := 0; i < n; i++ {
		end := len(mag) - 8*i
		start := end - 8
		if start < 0 {
			start = 0
		}
		var chunk uint64
		for _, by := range mag[start:end] {
			chunk = chunk<<8 | uint64(by)
		}
		e.writeUint64(chunk)
	}
	return nil
}

func (d *decoder) decodeBigInt(t tags.Tag) (*big.Int, error) {
	nb, err := d.readByte()
	if err != nil {
		return nil, err
	}

	// Reassemble the magnitude as one big-endian byte string: the chunks
	// arrive least significant first, so they land back to front
	n := int(nb)
	mag := make([]byte, n*8)
	for i := 0; i < n; i++ {
		chunk, err := d.readBytes(8)
		if err != nil {
			return nil, err
		}
		copy(mag[(n-1-i)*8:], chunk)
	}

	b := new(big.Int).SetBytes(mag)
	if t == tags.BigIntNeg {
		b.Neg(b)
	}
	return b, nil
}
