// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	"github.com/dtn7/pngme-go/pkg/cipher"
	"github.com/dtn7/pngme-go/pkg/png"
)

// decodeCommand for the "decode" CLI option.
func decodeCommand(conf tomlConfig, args []string, out io.Writer) error {
	var key string

	flagSet := newFlagSet("decode")
	flagSet.StringVarP(&key, "key", "k", conf.Encode.Key, "key the message was obscured with")

	args, err := parseFlags(flagSet, args, 2)
	if err != nil {
		return err
	}

	ct, err := png.ParseChunkType(args[1])
	if err != nil {
		return err
	}

	p, err := readPngFile(args[0])
	if err != nil {
		return err
	}

	chunk, ok := p.ChunkByType(ct)
	if !ok {
		return &png.Error{Kind: png.NotFound, Msg: fmt.Sprintf("no message for chunk '%v' in %s", ct, args[0])}
	}

	msg, err := png.NewChunk(ct, cipher.Decrypt(chunk.Data(), key)).DataString()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Message: %s\n", msg)
	return err
}
