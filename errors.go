// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package eswire

import (
	"go.e43.eu/eswire/internal/errors"
)

// Error kinds surfaced to callers. Each carries the offending construct
// where there is one; match with errors.Is / errors.As.
var (
	// ErrCorruptInput matches any decode failure caused by a malformed
	// buffer: truncated varints or payloads, unrecognised tags, invalid
	// UTF-8, out-of-range back-references, trailing bytes
	ErrCorruptInput error = errors.ErrCorruptInput

	// ErrTooManyExtensions is returned by NewCodec for more than 128
	// extensions
	ErrTooManyExtensions error = errors.ErrTooManyExtensions

	// ErrEmptyExtensionName is returned by NewCodec for a nameless
	// extension
	ErrEmptyExtensionName error = errors.ErrEmptyExtensionName
)

// NotSerializableError reports a value outside the value universe which no
// registered extension accepted.
type NotSerializableError = errors.NotSerializableError

// BigIntTooLargeError reports a big integer whose magnitude exceeds 255
// 64-bit chunks.
type BigIntTooLargeError = errors.BigIntTooLargeError

// IncompatibleCodecError reports an extension tag on the wire whose name is
// not registered with the decoding codec.
type IncompatibleCodecError = errors.IncompatibleCodecError

// CorruptInputError carries the byte offset at which decoding failed.
type CorruptInputError = errors.CorruptInputError

// DuplicateExtensionError is returned by NewCodec when two extensions share
// a name.
type DuplicateExtensionError = errors.DuplicateExtensionError
