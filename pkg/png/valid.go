// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

// Valid is implemented by every part of a Png which can be checked beyond
// what parsing enforces. A Png checks its chunks, which check their types.
type Valid interface {
	// CheckValid returns an error for incorrect data, possibly a multierror.
	CheckValid() error
}

var (
	_ Valid = ChunkType{}
	_ Valid = Chunk{}
	_ Valid = (*Png)(nil)
)
