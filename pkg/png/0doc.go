// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package png works on the chunk structure of PNG files, as defined in the
// PNG specification's section 5. A PNG file is read into an ordered list of
// typed, length-prefixed and CRC32 protected chunks. Those can be inspected,
// added or removed and written back without touching the image data itself.
// Pixel data is never decoded; IDAT chunks are opaque payloads.
//
// Hiding a message in a private ancillary chunk and reading it back:
//
//	p, err := png.ParsePng(fileBytes)
//	ct := png.MustParseChunkType("ruSt")
//	p.InsertBeforeEnd(png.NewChunk(ct, []byte("hello world!")))
//	out := p.Bytes()
//
//	c, ok := p.ChunkByType(ct)
//	msg, err := c.DataString()
//
// All errors of this package are of type *Error and can be compared by their
// kind, e.g., errors.Is(err, png.ErrCRCMismatch).
package png
