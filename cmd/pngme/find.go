// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
)

// findCommand for the "find" CLI option.
func findCommand(_ tomlConfig, args []string, out io.Writer) error {
	args, err := parseFlags(newFlagSet("find"), args, 1)
	if err != nil {
		return err
	}

	p, err := readPngFile(args[0])
	if err != nil {
		return err
	}

	chunks := p.FindPossibleMessages()
	if len(chunks) == 0 {
		_, err = fmt.Fprintln(out, "Couldn't find any chunk with a possible message")
		return err
	}

	for _, c := range chunks {
		msg, _ := c.DataString()
		if _, err := fmt.Fprintf(out, "%v\t%d bytes\t%q\n", c.Type(), c.Length(), msg); err != nil {
			return err
		}
	}
	return nil
}
