// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package eswire implements a self-describing binary encoding for value
// graphs of a dynamically typed runtime: primitives, containers, errors,
// byte buffers and typed views, with shared sub-structure and cycles
// preserved.
//
// Unlike textual formats, the encoding keeps value kinds apart (numbers vs
// big integers, dates, regular expressions, typed views over buffers), and
// unlike most binary formats it records object identity: a value reachable
// twice decodes to one object reachable twice, including through cycles.
// Both peers must run the same codec version and extension set; there is no
// cross-version compatibility.
//
// The mapping from Go types to the value universe is:
//
//                       Go | universe
//     ---------------------+--------------------
//                      nil | null
//        values.Undefined  | undefined
//                     bool | true / false
//     float64, int, int64  | number (IEEE-754 binary64)
//                   string | string (UTF-8)
//                 *big.Int | big integer (magnitude ≤ 255 × 64 bits)
//                time.Time | date (floating ms since epoch)
//            values.RegExp | regular expression
//            *values.Array | ordered sequence
//           *values.Object | keyed record (insertion-ordered)
//              *values.Set | set
//              *values.Map | key-value mapping
//            *values.Error | error (seven kinds, message/stack/cause)
//      *values.ArrayBuffer | byte buffer
//             *values.View | element view over a buffer
//                 anything | extension value, if a registered
//                          | extension accepts it
//
// Decoding always yields the canonical representation: numbers come back as
// float64 regardless of how they were passed in.
//
// Every encoded value starts with a one-byte tag; see the internal tags
// package for the registry. There is no outer framing, header or checksum.
// All fixed-width multi-byte fields are big-endian; lengths and indices are
// unsigned LEB128 varints.
//
// Values with object identity (containers, errors, buffers, views,
// extension values) enter a referrable table on first encounter; later
// appearances emit a back-reference to the table index. Scalars are always
// inline.
//
// Support for further value kinds is added by registering Extensions with
// NewCodec. An extension names itself, decides which values it accepts, and
// converts them to and from members of the value universe. An opaque
// context value may be threaded through every extension callback via
// EncodeContext/DecodeContext.
package eswire

import (
	eswireinterfaces "go.e43.eu/eswire/interfaces"
)

// interface Codec is the top-level interface to the eswire library
//
// A codec (which may be safely used from multiple goroutines) converts
// value graphs to and from their wire form
type Codec = eswireinterfaces.Codec

// interface Extension adds support for one value kind beyond the built-in
// universe
type Extension = eswireinterfaces.Extension
