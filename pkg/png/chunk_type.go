// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"encoding/json"
	"strings"
)

// ChunkType is the four byte type code of a chunk. Each byte must be an ASCII
// letter; the case of each letter encodes one property bit, as defined in
// section 5.4 of the PNG specification.
type ChunkType [4]byte

// propertyBit is the bit which distinguishes upper case from lower case letters.
const propertyBit byte = 1 << 5

// Standard chunk types.
var (
	TypeIHDR = MustParseChunkType("IHDR")
	TypePLTE = MustParseChunkType("PLTE")
	TypeIDAT = MustParseChunkType("IDAT")
	TypeIEND = MustParseChunkType("IEND")
)

// standardTypes are all chunk types registered by the PNG and APNG specifications.
var standardTypes = map[ChunkType]struct{}{
	TypeIHDR: {}, TypePLTE: {}, TypeIDAT: {}, TypeIEND: {},
	MustParseChunkType("tEXt"): {}, MustParseChunkType("zTXt"): {}, MustParseChunkType("iTXt"): {},
	MustParseChunkType("bKGD"): {}, MustParseChunkType("cHRM"): {}, MustParseChunkType("gAMA"): {},
	MustParseChunkType("hIST"): {}, MustParseChunkType("iCCP"): {}, MustParseChunkType("pHYs"): {},
	MustParseChunkType("sBIT"): {}, MustParseChunkType("sPLT"): {}, MustParseChunkType("sRGB"): {},
	MustParseChunkType("tIME"): {}, MustParseChunkType("tRNS"): {}, MustParseChunkType("eXIf"): {},
	MustParseChunkType("acTL"): {}, MustParseChunkType("fcTL"): {}, MustParseChunkType("fdAT"): {},
}

// NewChunkType creates a ChunkType from four raw bytes. An error is returned
// if any byte is not an ASCII letter. A set reserved bit is no reason for an
// error; compare IsValid.
func NewChunkType(b [4]byte) (ct ChunkType, err error) {
	for i, c := range b {
		if !isLetter(c) {
			err = newError(InvalidType, "chunk type byte %d is %#02x, not an ASCII letter", i, c)
			return
		}
	}

	ct = ChunkType(b)
	return
}

// ParseChunkType creates a ChunkType from a string of exactly four ASCII letters.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, newError(InvalidType, "chunk type %q has %d bytes instead of 4", s, len(s))
	}

	var b [4]byte
	copy(b[:], s)
	return NewChunkType(b)
}

// MustParseChunkType is like ParseChunkType, but panics on an error.
func MustParseChunkType(s string) ChunkType {
	ct, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// Bytes returns the raw type code.
func (ct ChunkType) Bytes() [4]byte {
	return ct
}

// IsCritical reports if the ancillary bit of the first byte is unset.
func (ct ChunkType) IsCritical() bool {
	return ct[0]&propertyBit == 0
}

// IsPublic reports if the private bit of the second byte is unset.
func (ct ChunkType) IsPublic() bool {
	return ct[1]&propertyBit == 0
}

// IsReservedBitValid reports if the reserved bit of the third byte is unset,
// as required by the current PNG version.
func (ct ChunkType) IsReservedBitValid() bool {
	return ct[2]&propertyBit == 0
}

// IsSafeToCopy reports if the safe-to-copy bit of the fourth byte is set.
func (ct ChunkType) IsSafeToCopy() bool {
	return ct[3]&propertyBit != 0
}

// IsValid reports if all bytes are ASCII letters and the reserved bit is valid.
func (ct ChunkType) IsValid() bool {
	for _, c := range ct {
		if !isLetter(c) {
			return false
		}
	}
	return ct.IsReservedBitValid()
}

// CheckValid returns an InvalidType error for chunk types which must not be
// written into a PNG file.
func (ct ChunkType) CheckValid() error {
	for i, c := range ct {
		if !isLetter(c) {
			return newError(InvalidType, "chunk type byte %d is %#02x, not an ASCII letter", i, c)
		}
	}

	if !ct.IsReservedBitValid() {
		return newError(InvalidType, "chunk type %q has its reserved bit set", ct.String())
	}

	return nil
}

// IsStandard reports if this type is registered by the PNG or APNG specifications.
func (ct ChunkType) IsStandard() bool {
	_, ok := standardTypes[ct]
	return ok
}

// Properties returns the property bits of this type as flags.
func (ct ChunkType) Properties() (p ChunkTypeProperties) {
	if !ct.IsCritical() {
		p |= Ancillary
	}
	if !ct.IsPublic() {
		p |= Private
	}
	if !ct.IsReservedBitValid() {
		p |= ReservedSet
	}
	if ct.IsSafeToCopy() {
		p |= SafeToCopy
	}
	return
}

func (ct ChunkType) String() string {
	return string(ct[:])
}

// MarshalJSON writes the type code as a JSON string.
func (ct ChunkType) MarshalJSON() ([]byte, error) {
	return json.Marshal(ct.String())
}

// ChunkTypeProperties are the property bits of a ChunkType, one per byte.
type ChunkTypeProperties uint8

const (
	// Ancillary chunks may be ignored by a decoder.
	Ancillary ChunkTypeProperties = 0x01

	// Private chunks are not part of the public PNG registry.
	Private ChunkTypeProperties = 0x02

	// ReservedSet marks a chunk type with its reserved bit set, which is invalid.
	ReservedSet ChunkTypeProperties = 0x04

	// SafeToCopy chunks may be copied by editors unaware of them.
	SafeToCopy ChunkTypeProperties = 0x08
)

// Has returns true if a given flag or mask of flags is set.
func (p ChunkTypeProperties) Has(flag ChunkTypeProperties) bool {
	return (p & flag) != 0
}

// Strings returns an array of all flags as a string representation.
func (p ChunkTypeProperties) Strings() (fields []string) {
	checks := []struct {
		field ChunkTypeProperties
		text  string
	}{
		{Ancillary, "ANCILLARY"},
		{Private, "PRIVATE"},
		{ReservedSet, "RESERVED"},
		{SafeToCopy, "SAFE_TO_COPY"},
	}

	for _, check := range checks {
		if p.Has(check.field) {
			fields = append(fields, check.text)
		}
	}

	return
}

// MarshalJSON returns a JSON array of property flags.
func (p ChunkTypeProperties) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Strings())
}

func (p ChunkTypeProperties) String() string {
	return strings.Join(p.Strings(), ",")
}
