// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/pngme-go/pkg/cipher"
	"github.com/dtn7/pngme-go/pkg/png"
)

// parseStrictChunkType parses a chunk type which may be written into a file.
// A single dash selects the configured default.
func parseStrictChunkType(conf tomlConfig, s string) (png.ChunkType, error) {
	if s == "-" {
		s = conf.Encode.ChunkType
	}

	ct, err := png.ParseChunkType(s)
	if err != nil {
		return ct, err
	}
	return ct, ct.CheckValid()
}

// encodeCommand for the "encode" CLI option.
func encodeCommand(conf tomlConfig, args []string, out io.Writer) error {
	var (
		key    string
		output string
	)

	flagSet := newFlagSet("encode")
	flagSet.StringVarP(&key, "key", "k", conf.Encode.Key, "key to obscure the message with")
	flagSet.StringVarP(&output, "output", "o", "", "write the result to this file instead")

	args, err := parseFlags(flagSet, args, 3)
	if err != nil {
		return err
	}

	var (
		input   = args[0]
		typeArg = args[1]
		message = args[2]
	)
	if output == "" {
		output = input
	}

	ct, err := parseStrictChunkType(conf, typeArg)
	if err != nil {
		return err
	}

	mode, err := conf.Encode.fileMode()
	if err != nil {
		return err
	}

	p, err := readPngFile(input)
	if err != nil {
		return err
	}

	chunk := png.NewChunk(ct, cipher.Encrypt([]byte(message), key))
	p.InsertBeforeEnd(chunk)

	if err := writePngFile(output, p, mode); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	log.WithFields(log.Fields{
		"file":       output,
		"chunk-type": ct,
		"length":     chunk.Length(),
		"obscured":   key != "",
	}).Debug("Encoded message")

	_, err = fmt.Fprintf(out, "Chunk '%v' added\n", ct)
	return err
}
