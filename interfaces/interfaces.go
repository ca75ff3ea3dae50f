// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package eswireinterfaces defines the primary interfaces of the eswire codec
//
// (This package is primarily separated out in order to permit the implementation to
// be broken down into multiple packages)
package eswireinterfaces

// interface Codec is the top-level interface to the eswire library
//
// A codec (which may be safely used from multiple goroutines) converts value
// graphs to and from their wire form. Each call allocates fresh mutable
// state; nothing persists between calls.
type Codec interface {
	// Encode emits v as a self-contained buffer
	Encode(v any) ([]byte, error)

	// Decode reconstructs the value graph held in buf. The whole buffer
	// must be consumed; trailing bytes are an error
	Decode(buf []byte) (any, error)

	// EncodeContext is Encode with a per-call context value that is
	// passed to every extension callback
	EncodeContext(v any, ctx any) ([]byte, error)

	// DecodeContext is Decode with a per-call context value that is
	// passed to every extension callback
	DecodeContext(buf []byte, ctx any) (any, error)
}

// interface Extension adds support for one value kind beyond the built-in
// universe.
//
// An extension reduces values it accepts to members of the value universe
// (optionally including values handled by other extensions), and
// materialises them again on decode. Extensions must be effectively
// immutable: the codec may invoke them from any goroutine, and they must not
// retain references to codec state across calls.
//
// Registration order determines priority: the first extension whose Accepts
// returns true wins.
type Extension interface {
	// Name identifies the extension on the wire. It must be non-empty
	// and unique within a codec; ASCII is recommended
	Name() string

	// Accepts reports whether this extension handles v
	Accepts(v any) bool

	// ToReduced converts v to a member of the value universe. ctx is the
	// per-call context
	ToReduced(v any, ctx any) (any, error)

	// FromReduced rebuilds the original value from its reduced form. ctx
	// is the per-call context
	FromReduced(v any, ctx any) (any, error)
}

// ExtensionFuncs adapts plain functions into an Extension.
type ExtensionFuncs struct {
	ExtensionName   string
	AcceptsFunc     func(v any) bool
	ToReducedFunc   func(v any, ctx any) (any, error)
	FromReducedFunc func(v any, ctx any) (any, error)
}

func (e *ExtensionFuncs) Name() string { return e.ExtensionName }

func (e *ExtensionFuncs) Accepts(v any) bool { return e.AcceptsFunc(v) }

func (e *ExtensionFuncs) ToReduced(v any, ctx any) (any, error) {
	return e.ToReducedFunc(v, ctx)
}

func (e *ExtensionFuncs) FromReduced(v any, ctx any) (any, error) {
	return e.FromReducedFunc(v, ctx)
}
