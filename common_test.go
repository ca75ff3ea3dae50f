// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package eswire

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.e43.eu/eswire/values"
)

type testDirection int

const (
	bothTest testDirection = iota
	encodeTest
	decodeTest
)

type testcase struct {
	// Name of this test case
	Name string

	// Which directions to run this test in (defaults to both)
	Direction testDirection

	// The value to encode, or to compare against after decoding
	Value any

	// The encoded representation of the value
	Bytes []byte

	// Error expected on en/decode
	EncErrorIs error
	DecErrorIs error

	// Comparator to use (instead of the default) after successful
	// decoding. Cyclic graphs need this, as do any cases where the
	// default options fall short
	DecodeComparator func(t *testing.T, expected, actual any)
}

// graphDiffOpts compare decoded graphs structurally: NaNs equate, big
// integers compare by value, insertion-ordered containers by their
// unexported storage. Not safe for cyclic graphs; those cases supply their
// own comparator.
var graphDiffOpts = cmp.Options{
	cmpopts.EquateNaNs(),
	cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
	cmp.AllowUnexported(values.Object{}, values.Set{}, values.Map{}),
}

func assertGraphsEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, graphDiffOpts); diff != "" {
		t.Errorf("decoded graph mismatch (-want +got):\n%s", diff)
	}
}

func RunTestcases(t *testing.T, tcs []testcase) {
	t.Parallel()

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			if tc.Direction != decodeTest {
				t.Run("Encode", func(t *testing.T) {
					t.Parallel()

					buf, err := Encode(tc.Value)
					if tc.EncErrorIs != nil {
						require.Error(t, err, "Encoding should have returned an error")
						require.Truef(t, errors.Is(err, tc.EncErrorIs), "Error expected to be %s, but was %s", tc.EncErrorIs, err)
						return
					}
					require.NoError(t, err, "Encode should succeed")
					assert.Equal(t, tc.Bytes, buf, "Encoded bytes should match")

					// A second encode of the same graph must be
					// byte-for-byte identical
					buf2, err := Encode(tc.Value)
					require.NoError(t, err, "Second encode should succeed")
					assert.Equal(t, buf, buf2, "Encoding should be deterministic")
				})
			}

			if tc.Direction != encodeTest {
				t.Run("Decode", func(t *testing.T) {
					t.Parallel()

					v, err := Decode(tc.Bytes)
					if tc.DecErrorIs != nil {
						require.Error(t, err, "Decoding should have returned an error")
						require.Truef(t, errors.Is(err, tc.DecErrorIs), "Error expected to be %s, but was %s", tc.DecErrorIs, err)
						return
					}
					require.NoError(t, err, "Decode should succeed")

					if tc.DecodeComparator != nil {
						tc.DecodeComparator(t, tc.Value, v)
					} else {
						assertGraphsEqual(t, tc.Value, v)
					}
				})
			}
		})
	}
}

// roundTrip encodes v, decodes the result and returns the reconstruction.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	buf, err := Encode(v)
	require.NoError(t, err, "Encode should succeed")
	out, err := Decode(buf)
	require.NoError(t, err, "Decode should succeed")
	return out
}
