// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package tags holds the wire tag registry.
//
// Every encoded value starts with a one-byte tag. Tags are partitioned into
// bands whose high bits double as family masks: 0x20 marks the error band,
// 0x40 the buffer band, 0x80 the extension band. The decoder dispatches on
// exact tags for the scalar and container cases and on the family bits for
// the error and buffer sub-ranges.
//
// Peers must agree on these assignments bit for bit.
package tags

import (
	"fmt"

	"go.e43.eu/eswire/values"
)

// Tag is a one-byte wire tag.
type Tag byte

const (
	// Unit / scalar / container band
	Null      Tag = 0x01
	Undefined Tag = 0x02
	True      Tag = 0x03
	False     Tag = 0x04
	Backref   Tag = 0x05
	Number    Tag = 0x06
	Date      Tag = 0x07
	RegExp    Tag = 0x08
	String    Tag = 0x09
	BigIntNeg Tag = 0x0A
	BigIntPos Tag = 0x0B
	Array     Tag = 0x0C
	Object    Tag = 0x0D
	Set       Tag = 0x0E
	Map       Tag = 0x0F

	// Error band: Error + values.ErrorKind
	Error Tag = 0x20

	// Buffer band
	ArrayBuffer Tag = 0x40
	DataView    Tag = 0x41
	// Typed views occupy 0x42..0x4C: Int8, Uint8, Uint8Clamped, Int16,
	// Uint16, Int32, Uint32, Float32, Float64, BigInt64, BigUint64
	TypedView Tag = 0x42

	// Extension band
	Extension Tag = 0x80
)

// Family masks.
const (
	ErrorMask     Tag = 0x20
	BufferMask    Tag = 0x40
	ExtensionMask Tag = 0x80
)

// IsError reports whether t lies in the error band.
func (t Tag) IsError() bool {
	return t&ExtensionMask == 0 && t&BufferMask == 0 && t&ErrorMask != 0
}

// IsBuffer reports whether t lies in the buffer band (raw buffers and views).
func (t Tag) IsBuffer() bool {
	return t&ExtensionMask == 0 && t&BufferMask != 0
}

// IsExtension reports whether t lies in the extension band.
func (t Tag) IsExtension() bool {
	return t&ExtensionMask != 0
}

// ErrorTag returns the tag for an error of kind k.
func ErrorTag(k values.ErrorKind) Tag {
	return Error + Tag(k)
}

// ErrorKind returns the error kind encoded by t; ok is false outside the
// assigned error range.
func (t Tag) ErrorKind() (k values.ErrorKind, ok bool) {
	k = values.ErrorKind(t - Error)
	return k, t.IsError() && k < values.NumErrorKinds
}

// ViewTag returns the tag for a view of kind k.
func ViewTag(k values.ViewKind) Tag {
	if k == values.DataView {
		return DataView
	}
	return TypedView + Tag(k)
}

// ViewKind returns the view kind encoded by t; ok is false outside the
// assigned view range.
func (t Tag) ViewKind() (k values.ViewKind, ok bool) {
	switch {
	case t == DataView:
		return values.DataView, true
	case t >= TypedView && t < TypedView+Tag(values.DataView):
		return values.ViewKind(t - TypedView), true
	default:
		return 0, false
	}
}

// Name returns a human-readable name for t, for diagnostics.
func (t Tag) Name() string {
	switch t {
	case Null:
		return "Null"
	case Undefined:
		return "Undefined"
	case True:
		return "True"
	case False:
		return "False"
	case Backref:
		return "Backref"
	case Number:
		return "Number"
	case Date:
		return "Date"
	case RegExp:
		return "RegExp"
	case String:
		return "String"
	case BigIntNeg:
		return "BigIntNeg"
	case BigIntPos:
		return "BigIntPos"
	case Array:
		return "Array"
	case Object:
		return "Object"
	case Set:
		return "Set"
	case Map:
		return "Map"
	case ArrayBuffer:
		return "ArrayBuffer"
	case Extension:
		return "Extension"
	}

	if k, ok := t.ErrorKind(); ok {
		return k.String()
	}
	if k, ok := t.ViewKind(); ok {
		return k.String() + "View"
	}
	return fmt.Sprintf("Tag(%#02x)", byte(t))
}
