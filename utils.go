// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package eswire

import (
	eswireinterfaces "go.e43.eu/eswire/interfaces"
	"go.e43.eu/eswire/internal/coder"
)

// The default codec (used by the package global functions)
//
// This behaves identically to a codec created using NewCodec with no
// extensions.
var DefaultCodec Codec = mustNewCoder()

func mustNewCoder() *coder.Coder {
	cr, err := coder.NewCoder(nil)
	if err != nil {
		panic(err)
	}
	return cr
}

// Encode emits v as a self-contained buffer
func Encode(v any) ([]byte, error) {
	return DefaultCodec.Encode(v)
}

// Decode reconstructs the value graph held in buf
func Decode(buf []byte) (any, error) {
	return DefaultCodec.Decode(buf)
}

// NewCodec constructs a codec with the given extensions. It fails if more
// than 128 extensions are passed, or if any extension has an empty or
// duplicate name.
func NewCodec(exts ...Extension) (Codec, error) {
	return coder.NewCoder(exts)
}

// NewExtension builds an Extension from plain functions.
func NewExtension(
	name string,
	accepts func(v any) bool,
	toReduced func(v any, ctx any) (any, error),
	fromReduced func(v any, ctx any) (any, error),
) Extension {
	return &eswireinterfaces.ExtensionFuncs{
		ExtensionName:   name,
		AcceptsFunc:     accepts,
		ToReducedFunc:   toReduced,
		FromReducedFunc: fromReduced,
	}
}
