// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// wiredump decodes an eswire buffer and prints the reconstructed value
// graph, for debugging peers and stored payloads. Extension tags cannot be
// resolved here (extensions are code, not data); buffers using them will
// report the missing name.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	flag "github.com/spf13/pflag"

	"go.e43.eu/eswire"
)

var (
	input    = flag.StringP("input", "i", "-", "input file (- for stdin)")
	hexdump  = flag.Bool("hex", false, "also print a hex dump of the raw buffer")
	maxDepth = flag.Int("max-depth", 0, "limit dump depth (0 = unlimited)")
)

func main() {
	flag.Parse()

	buf, err := readInput(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wiredump: %s\n", err)
		os.Exit(1)
	}

	if *hexdump {
		fmt.Print(hex.Dump(buf))
	}

	v, err := eswire.Decode(buf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wiredump: %s\n", err)
		os.Exit(1)
	}

	// spew tracks visited pointers, so cyclic graphs print instead of
	// hanging
	cfg := spew.ConfigState{Indent: "  ", MaxDepth: *maxDepth, DisableMethods: true}
	cfg.Dump(v)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
