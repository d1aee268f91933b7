// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dtn7/cboring"
	"github.com/hashicorp/go-multierror"
)

// Signature is the fixed header of every PNG file.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is a PNG file as an ordered sequence of Chunks, following the Signature.
// The order of the chunks is kept as is; callers are responsible for keeping
// IHDR first and IEND last, compare InsertBeforeEnd and CheckValid.
type Png struct {
	chunks []Chunk
}

// NewPng creates a new Png from the given chunks.
func NewPng(chunks []Chunk) *Png {
	return &Png{chunks: append([]Chunk{}, chunks...)}
}

// ParsePng reads a Png from a byte buffer. The buffer must start with the
// Signature and is then consumed chunk by chunk until its end, independent of
// the chunks' types.
func ParsePng(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		n := len(b)
		if n > len(Signature) {
			n = len(Signature)
		}
		return nil, newError(InvalidSignature, "expected PNG signature %x, got %x", Signature, b[:n])
	}

	p := &Png{}
	for offset := len(Signature); offset < len(b); {
		c, err := ParseChunk(b[offset:])
		if err != nil {
			return nil, wrapError(err, "chunk %d at offset %d", len(p.chunks), offset)
		}

		p.chunks = append(p.chunks, c)
		offset += c.Len()
	}

	return p, nil
}

// ReadPng reads a Png from a Reader until it is exhausted.
func ReadPng(r io.Reader) (*Png, error) {
	br := bufio.NewReader(r)

	var sig [8]byte
	if n, err := io.ReadFull(br, sig[:]); err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, newError(InvalidSignature, "expected PNG signature %x, got %x", Signature, sig[:n])
	} else if err != nil {
		return nil, err
	} else if sig != Signature {
		return nil, newError(InvalidSignature, "expected PNG signature %x, got %x", Signature, sig)
	}

	p := &Png{}
	for {
		var c Chunk
		if err := c.Unmarshal(br); err == io.EOF {
			return p, nil
		} else if err != nil {
			return nil, wrapError(err, "chunk %d", len(p.chunks))
		}

		p.chunks = append(p.chunks, c)
	}
}

// Chunks returns all chunks in their order.
func (p *Png) Chunks() []Chunk {
	return append([]Chunk{}, p.chunks...)
}

// AppendChunk adds a Chunk at the end, even behind an IEND chunk.
func (p *Png) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// InsertBeforeEnd adds a Chunk in front of the last IEND chunk. Without an
// IEND chunk, it is appended.
func (p *Png) InsertBeforeEnd(c Chunk) {
	for i := len(p.chunks) - 1; i >= 0; i-- {
		if p.chunks[i].Type() == TypeIEND {
			p.chunks = append(p.chunks[:i], append([]Chunk{c}, p.chunks[i:]...)...)
			return
		}
	}

	p.AppendChunk(c)
}

// ChunkByType returns the first Chunk of the requested type.
func (p *Png) ChunkByType(ct ChunkType) (Chunk, bool) {
	for _, c := range p.chunks {
		if c.Type() == ct {
			return c, true
		}
	}
	return Chunk{}, false
}

// ChunksByType returns all chunks of the requested type.
func (p *Png) ChunksByType(ct ChunkType) (cs []Chunk) {
	for _, c := range p.chunks {
		if c.Type() == ct {
			cs = append(cs, c)
		}
	}
	return
}

// RemoveFirstChunk removes and returns the first Chunk of the requested type.
// If there is no such Chunk, a NotFound error is returned and nothing changes.
func (p *Png) RemoveFirstChunk(ct ChunkType) (Chunk, error) {
	for i, c := range p.chunks {
		if c.Type() == ct {
			p.chunks = append(p.chunks[:i:i], p.chunks[i+1:]...)
			return c, nil
		}
	}

	return Chunk{}, newError(NotFound, "no chunk of type %v", ct)
}

// FindPossibleMessages returns all chunks which might carry a hidden message:
// their type is not a standard one and their data is valid UTF-8 text.
func (p *Png) FindPossibleMessages() (cs []Chunk) {
	for _, c := range p.chunks {
		if c.Type().IsStandard() {
			continue
		}
		if _, err := c.DataString(); err == nil {
			cs = append(cs, c)
		}
	}
	return
}

// Bytes returns the serialized form: the Signature, followed by all chunks.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.Len()
	}

	buff := bytes.NewBuffer(make([]byte, 0, size))
	_, _ = p.WriteTo(buff)
	return buff.Bytes()
}

// WriteTo writes the serialized form into a Writer.
func (p *Png) WriteTo(w io.Writer) (n int64, err error) {
	cw := &countWriter{w: w}

	if _, err = cw.Write(Signature[:]); err != nil {
		return cw.n, err
	}

	for _, c := range p.chunks {
		if err = c.Marshal(cw); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

// CheckValid returns all structural problems of this Png, e.g., a missing
// IHDR chunk at the beginning. Parsing does not enforce this structure.
func (p *Png) CheckValid() (errs error) {
	if len(p.chunks) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("Png contains no chunks"))
		return
	}

	if first := p.chunks[0].Type(); first != TypeIHDR {
		errs = multierror.Append(errs, fmt.Errorf("Png: first chunk is %v, not IHDR", first))
	}

	if last := p.chunks[len(p.chunks)-1].Type(); last != TypeIEND {
		errs = multierror.Append(errs, fmt.Errorf("Png: last chunk is %v, not IEND", last))
	}

	for _, ct := range []ChunkType{TypeIHDR, TypeIEND} {
		if n := len(p.ChunksByType(ct)); n > 1 {
			errs = multierror.Append(errs, fmt.Errorf("Png: %v chunk occurred %d times", ct, n))
		}
	}

	for i, c := range p.chunks {
		if chunkErr := c.CheckValid(); chunkErr != nil {
			errs = multierror.Append(errs, fmt.Errorf("Png: chunk %d: %w", i, chunkErr))
		}
	}

	return
}

// MarshalCbor writes this Png's CBOR representation, an array of its chunks.
func (p *Png) MarshalCbor(w io.Writer) error {
	if err := cboring.WriteArrayLength(uint64(len(p.chunks)), w); err != nil {
		return err
	}

	for i := range p.chunks {
		if err := cboring.Marshal(&p.chunks[i], w); err != nil {
			return fmt.Errorf("chunk %d failed: %v", i, err)
		}
	}

	return nil
}

// UnmarshalCbor creates this Png based on a CBOR representation.
func (p *Png) UnmarshalCbor(r io.Reader) error {
	l, err := cboring.ReadArrayLength(r)
	if err != nil {
		return err
	}

	p.chunks = nil
	for i := uint64(0); i < l; i++ {
		var c Chunk
		if err := cboring.Unmarshal(&c, r); err != nil {
			return fmt.Errorf("chunk %d failed: %w", i, err)
		}
		p.chunks = append(p.chunks, c)
	}

	return nil
}

// MarshalJSON creates a JSON object for this Png.
func (p *Png) MarshalJSON() ([]byte, error) {
	chunks := p.chunks
	if chunks == nil {
		chunks = []Chunk{}
	}

	return json.Marshal(&struct {
		Chunks []Chunk `json:"chunks"`
	}{
		Chunks: chunks,
	})
}

func (p *Png) String() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "%d chunks", len(p.chunks))
	for i, c := range p.chunks {
		_, _ = fmt.Fprintf(&b, "\n  %d: %v", i, c)
	}

	return b.String()
}

// countWriter counts the bytes written to the underlying Writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.n += int64(n)
	return
}
