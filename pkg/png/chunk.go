// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dtn7/cboring"
)

const (
	chunkLengthBytes = 4
	chunkTypeBytes   = 4
	chunkCRCBytes    = 4

	// chunkOverhead is the number of bytes each chunk needs besides its data.
	chunkOverhead = chunkLengthBytes + chunkTypeBytes + chunkCRCBytes
)

// Chunk is a single length-prefixed, typed and checksummed unit of a PNG file.
// A Chunk is immutable; its CRC is always derived from its type and data.
type Chunk struct {
	chunkType ChunkType
	data      []byte
}

// NewChunk creates a Chunk of the given type. The data is copied. The type's
// validity is not checked here, compare ChunkType.CheckValid.
func NewChunk(ct ChunkType, data []byte) Chunk {
	return Chunk{
		chunkType: ct,
		data:      append([]byte{}, data...),
	}
}

// ParseChunk reads a Chunk from the beginning of b. Bytes following the chunk
// are ignored; compare Len to advance within a buffer.
func ParseChunk(b []byte) (c Chunk, err error) {
	if len(b) < chunkOverhead {
		err = newError(TooShort, "chunk needs at least %d bytes, got %d", chunkOverhead, len(b))
		return
	}

	length := binary.BigEndian.Uint32(b[0:4])
	if uint64(len(b)) < chunkOverhead+uint64(length) {
		err = newError(TooShort, "chunk declares %d data bytes, but only %d are available",
			length, len(b)-chunkOverhead)
		return
	}

	var rawType [4]byte
	copy(rawType[:], b[4:8])

	ct, ctErr := NewChunkType(rawType)
	if ctErr != nil {
		err = ctErr
		return
	}

	dataEnd := 8 + int(length)
	c = NewChunk(ct, b[8:dataEnd])

	if crcVal := binary.BigEndian.Uint32(b[dataEnd : dataEnd+chunkCRCBytes]); crcVal != c.CRC() {
		err = newError(CRCMismatch, "invalid CRC value for %v chunk: %08x instead of expected %08x",
			ct, crcVal, c.CRC())
		c = Chunk{}
	}

	return
}

// Type returns this Chunk's type code.
func (c Chunk) Type() ChunkType {
	return c.chunkType
}

// Length returns the length of this Chunk's data, as stored in its length field.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Len returns the number of bytes of this Chunk's serialized form.
func (c Chunk) Len() int {
	return chunkOverhead + len(c.data)
}

// Data returns a copy of this Chunk's data.
func (c Chunk) Data() []byte {
	return append([]byte{}, c.data...)
}

// CheckValid returns an error if this Chunk's type is not a valid chunk type,
// e.g., has its reserved bit set.
func (c Chunk) CheckValid() error {
	return c.chunkType.CheckValid()
}

// DataString returns this Chunk's data as a string. An InvalidUTF8 error is
// returned if the data is no valid UTF-8.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", newError(InvalidUTF8, "data of %v chunk is not valid UTF-8", c.chunkType)
	}
	return string(c.data), nil
}

// CRC returns the CRC32 over this Chunk's type and data.
func (c Chunk) CRC() uint32 {
	return calculateCRC(c.chunkType, c.data)
}

// Equal reports if both Chunks have the same type and data.
func (c Chunk) Equal(other Chunk) bool {
	return c.chunkType == other.chunkType && bytes.Equal(c.data, other.data)
}

// Bytes returns the serialized form: length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	buff := bytes.NewBuffer(make([]byte, 0, c.Len()))
	_ = c.Marshal(buff)
	return buff.Bytes()
}

// Marshal writes this Chunk's serialized form into a Writer.
func (c Chunk) Marshal(w io.Writer) error {
	var header [chunkLengthBytes + chunkTypeBytes]byte
	binary.BigEndian.PutUint32(header[0:4], c.Length())
	copy(header[4:8], c.chunkType[:])

	var crc [chunkCRCBytes]byte
	binary.BigEndian.PutUint32(crc[:], c.CRC())

	for _, field := range [][]byte{header[:], c.data, crc[:]} {
		if _, err := w.Write(field); err != nil {
			return err
		}
	}

	return nil
}

// Unmarshal reads a serialized Chunk from a Reader. If the Reader is exhausted
// before the first byte, io.EOF is returned unwrapped.
func (c *Chunk) Unmarshal(r io.Reader) error {
	var header [chunkLengthBytes + chunkTypeBytes]byte
	if _, err := io.ReadFull(r, header[:]); err == io.EOF {
		return io.EOF
	} else if errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Kind: TooShort, Msg: "reading chunk header", Cause: err}
	} else if err != nil {
		return err
	}

	length := binary.BigEndian.Uint32(header[0:4])

	var rawType [4]byte
	copy(rawType[:], header[4:8])
	ct, err := NewChunkType(rawType)
	if err != nil {
		return err
	}

	// Read the data incrementally instead of trusting the length field for an allocation.
	data, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return err
	} else if uint32(len(data)) != length {
		return newError(TooShort, "%v chunk declares %d data bytes, but only %d are available",
			ct, length, len(data))
	}

	var crc [chunkCRCBytes]byte
	if _, err := io.ReadFull(r, crc[:]); errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Kind: TooShort, Msg: fmt.Sprintf("reading CRC of %v chunk", ct), Cause: err}
	} else if err != nil {
		return err
	}

	if crcVal, crcCalc := binary.BigEndian.Uint32(crc[:]), calculateCRC(ct, data); crcVal != crcCalc {
		return newError(CRCMismatch, "invalid CRC value for %v chunk: %08x instead of expected %08x",
			ct, crcVal, crcCalc)
	}

	c.chunkType = ct
	c.data = data
	return nil
}

// MarshalCbor writes this Chunk's CBOR representation, an array of its type,
// data and CRC.
func (c *Chunk) MarshalCbor(w io.Writer) error {
	if err := cboring.WriteArrayLength(3, w); err != nil {
		return err
	}

	if err := cboring.WriteTextString(c.chunkType.String(), w); err != nil {
		return err
	}

	if err := cboring.WriteByteString(c.data, w); err != nil {
		return err
	}

	return cboring.WriteUInt(uint64(c.CRC()), w)
}

// UnmarshalCbor creates this Chunk based on a CBOR representation.
func (c *Chunk) UnmarshalCbor(r io.Reader) error {
	if l, err := cboring.ReadArrayLength(r); err != nil {
		return err
	} else if l != 3 {
		return fmt.Errorf("expected array with length 3, got %d", l)
	}

	var ct ChunkType
	if s, err := cboring.ReadTextString(r); err != nil {
		return err
	} else if ct, err = ParseChunkType(s); err != nil {
		return err
	}

	data, err := cboring.ReadByteString(r)
	if err != nil {
		return err
	}

	if crcVal, err := cboring.ReadUInt(r); err != nil {
		return err
	} else if crcCalc := calculateCRC(ct, data); crcVal != uint64(crcCalc) {
		return newError(CRCMismatch, "invalid CRC value for %v chunk: %08x instead of expected %08x",
			ct, crcVal, crcCalc)
	}

	c.chunkType = ct
	c.data = data
	return nil
}

// MarshalJSON creates a JSON object for this Chunk.
func (c Chunk) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type       ChunkType           `json:"type"`
		Length     uint32              `json:"length"`
		CRC        uint32              `json:"crc"`
		Properties ChunkTypeProperties `json:"properties"`
		Data       []byte              `json:"data"`
	}{
		Type:       c.chunkType,
		Length:     c.Length(),
		CRC:        c.CRC(),
		Properties: c.chunkType.Properties(),
		Data:       c.data,
	})
}

func (c Chunk) String() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "type: %v, ", c.chunkType)
	_, _ = fmt.Fprintf(&b, "length: %d, ", c.Length())
	_, _ = fmt.Fprintf(&b, "crc: %08x", c.CRC())

	return b.String()
}
