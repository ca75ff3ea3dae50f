// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"math"
	"math/big"
	"reflect"
	"sync"
	"time"

	"go.e43.eu/eswire/internal/tags"
	"go.e43.eu/eswire/values"
)

var encoderPool = sync.Pool{
	New: func() interface{} {
		return new(encoder)
	},
}

type encoder struct {
	// Our coder
	cr *Coder

	// Per-call extension context
	ctx any

	// Output buffer
	buf []byte

	// Referrable table: identity-bearing values already emitted, in
	// emission order. Lookups are linear; graphs are expected small
	refs []any

	// Small scratch buffer (avoids needing to ever allocate when writing primitives)
	scratch [8]byte
}

func (e *encoder) reset(cr *Coder, ctx any) {
	e.cr = cr
	e.ctx = ctx
	e.buf = e.buf[:0]
	e.refs = e.refs[:0]
}

func (e *encoder) release() {
	e.cr = nil
	e.ctx = nil
	for i := range e.refs {
		e.refs[i] = nil
	}
	encoderPool.Put(e)
}

func (e *encoder) writeByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *encoder) writeTag(t tags.Tag) {
	e.buf = append(e.buf, byte(t))
}

func (e *encoder) writeBytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// writeVarint emits u as an unsigned LEB128 varint: seven payload bits per
// byte, high bit set on every continuation byte.
func (e *encoder) writeVarint(u uint64) {
	for u >= 0x80 {
		e.buf = append(e.buf, byte(u)|0x80)
		u >>= 7
	}
	e.buf = append(e.buf, byte(u))
}

// writeUint64 emits u as eight big-endian bytes.
func (e *encoder) writeUint64(u uint64) {
	e.scratch[0] = byte(u >> 56)
	e.scratch[1] = byte(u >> 48)
	e.scratch[2] = byte(u >> 40)
	e.scratch[3] = byte(u >> 32)
	e.scratch[4] = byte(u >> 24)
	e.scratch[5] = byte(u >> 16)
	e.scratch[6] = byte(u >> 8)
	e.scratch[7] = byte(u)
	e.buf = append(e.buf, e.scratch[0:8]...)
}

func (e *encoder) writeDouble(f float64) {
	e.writeUint64(math.Float64bits(f))
}

// writeString emits a full tagged string: tag, varint byte length, UTF-8
// payload. Record keys, regexp parts, error fields and extension names all
// go through here too; their decoders skip the tag byte.
func (e *encoder) writeString(s string) {
	e.writeTag(tags.String)
	e.writeVarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// encodeValue is the central dispatch of the encoder.
func (e *encoder) encodeValue(v any) error {
	switch v := v.(type) {
	case nil:
		e.writeTag(tags.Null)
	case values.Undefined:
		e.writeTag(tags.Undefined)
	case bool:
		if v {
			e.writeTag(tags.True)
		} else {
			e.writeTag(tags.False)
		}
	case float64:
		e.writeTag(tags.Number)
		e.writeDouble(v)
	case int:
		e.writeTag(tags.Number)
		e.writeDouble(float64(v))
	case int64:
		e.writeTag(tags.Number)
		e.writeDouble(float64(v))
	case string:
		e.writeString(v)
	case *big.Int:
		return e.encodeBigInt(v)
	case time.Time:
		e.encodeDate(v)
	case values.RegExp:
		e.encodeRegExp(v)
	case *values.Array, *values.Object, *values.Set, *values.Map,
		*values.Error, *values.ArrayBuffer, *values.View:
		return e.encodeReferrable(v)
	default:
		return e.encodeExtension(v)
	}
	return nil
}

// encodeReferrable handles every built-in identity-bearing value: emit a
// back-reference if the object was seen before, otherwise claim the next
// table index and then dispatch. The append happens before recursion so that
// a cycle back to v resolves to the index claimed here.
func (e *encoder) encodeReferrable(v any) error {
	if idx, ok := e.lookupRef(v); ok {
		e.writeTag(tags.Backref)
		e.writeVarint(uint64(idx))
		return nil
	}
	e.refs = append(e.refs, v)

	switch v := v.(type) {
	case *values.Array:
		return e.encodeArray(v)
	case *values.Object:
		return e.encodeObject(v)
	case *values.Set:
		return e.encodeSet(v)
	case *values.Map:
		return e.encodeMap(v)
	case *values.Error:
		return e.encodeError(v)
	case *values.ArrayBuffer:
		e.encodeArrayBuffer(v)
		return nil
	case *values.View:
		return e.encodeView(v)
	default:
		// Unreachable: encodeValue passes only the types above; extension
		// values go through encodeExtension, which keeps its own table entry
		panic("eswire: encodeReferrable on non-referrable value")
	}
}

// lookupRef searches the referrable table for an identical object.
func (e *encoder) lookupRef(v any) (int, bool) {
	for i, r := range e.refs {
		if identical(r, v) {
			return i, true
		}
	}
	return 0, false
}

// identical reports object identity. Pointer-shaped values compare by
// pointer; values without usable identity never compare identical, so each
// occurrence is assigned a fresh table slot on both sides.
func identical(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	default:
		return false
	}
}
