// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/dtn7/pngme-go/pkg/png"
)

// removeCommand for the "remove" CLI option.
func removeCommand(conf tomlConfig, args []string, out io.Writer) error {
	args, err := parseFlags(newFlagSet("remove"), args, 2)
	if err != nil {
		return err
	}

	var (
		filename = args[0]
		typeArg  = args[1]
	)

	ct, err := png.ParseChunkType(typeArg)
	if err != nil {
		return err
	}

	mode, err := conf.Encode.fileMode()
	if err != nil {
		return err
	}

	p, err := readPngFile(filename)
	if err != nil {
		return err
	}

	chunk, err := p.RemoveFirstChunk(ct)
	if err != nil {
		return fmt.Errorf("removing from %s: %w", filename, err)
	}

	if err := writePngFile(filename, p, mode); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	log.WithFields(log.Fields{
		"file":  filename,
		"chunk": chunk,
	}).Debug("Removed chunk")

	_, err = fmt.Fprintf(out, "Chunk '%v' removed\n", ct)
	return err
}
