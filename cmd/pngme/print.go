// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dtn7/cboring"

	"github.com/dtn7/pngme-go/pkg/png"
)

// writeChunkList writes one line per chunk with its type and data length.
func writeChunkList(out io.Writer, chunks []png.Chunk) error {
	for i, c := range chunks {
		if _, err := fmt.Fprintf(out, "%d\t%v\t%d bytes\t%v\n", i, c.Type(), c.Length(), c.Type().Properties()); err != nil {
			return err
		}
	}
	return nil
}

// printCommand for the "print" CLI option.
func printCommand(_ tomlConfig, args []string, out io.Writer) error {
	var format string

	flagSet := newFlagSet("print")
	flagSet.StringVarP(&format, "format", "f", "text", "output format: text, json or cbor")

	args, err := parseFlags(flagSet, args, 1)
	if err != nil {
		return err
	}

	p, err := readPngFile(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return writeChunkList(out, p.Chunks())

	case "json":
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err

	case "cbor":
		return cboring.Marshal(p, out)

	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, format)
	}
}
