// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"errors"
	"testing"
)

func TestNewChunkType(t *testing.T) {
	tests := []struct {
		data  [4]byte
		valid bool
	}{
		{[4]byte{82, 117, 83, 116}, true},
		{[4]byte{'I', 'E', 'N', 'D'}, true},
		{[4]byte{'R', 'u', '1', 't'}, false},
		{[4]byte{'R', 'u', 'S', 0x00}, false},
		{[4]byte{'[', 'u', 'S', 't'}, false},
		{[4]byte{'@', 'u', 'S', 't'}, false},
		{[4]byte{'`', 'u', 'S', 't'}, false},
		{[4]byte{'{', 'u', 'S', 't'}, false},
	}

	for _, test := range tests {
		ct, err := NewChunkType(test.data)
		if (err == nil) != test.valid {
			t.Fatalf("NewChunkType(%v): expected valid := %t, got %v", test.data, test.valid, err)
		} else if !test.valid {
			if !errors.Is(err, ErrInvalidType) {
				t.Fatalf("NewChunkType(%v): expected InvalidType, got %v", test.data, err)
			}
			continue
		}

		if ct.Bytes() != test.data {
			t.Fatalf("Bytes mismatch: expected %v, got %v", test.data, ct.Bytes())
		}
	}
}

func TestParseChunkType(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"RuSt", true},
		{"RUST", true},
		{"rust", true},
		{"Rust", true},
		{"Ru1t", false},
		{"RuS", false},
		{"RuStt", false},
		{"", false},
		{"Rü", false},
	}

	for _, test := range tests {
		ct, err := ParseChunkType(test.input)
		if (err == nil) != test.valid {
			t.Fatalf("ParseChunkType(%q): expected valid := %t, got %v", test.input, test.valid, err)
		} else if !test.valid {
			if kind, ok := KindOf(err); !ok || kind != InvalidType {
				t.Fatalf("ParseChunkType(%q): expected InvalidType, got %v", test.input, err)
			}
			continue
		}

		if s := ct.String(); s != test.input {
			t.Fatalf("String mismatch: expected %q, got %q", test.input, s)
		}
	}

	if a, b := MustParseChunkType("RuSt"), ChunkType([4]byte{82, 117, 83, 116}); a != b {
		t.Fatalf("ChunkTypes from string and bytes differ: %v != %v", a, b)
	}
	if MustParseChunkType("RuSt") == MustParseChunkType("rust") {
		t.Fatalf("ChunkType comparison is not case sensitive")
	}
}

func TestChunkTypeProperties(t *testing.T) {
	tests := []struct {
		input         string
		critical      bool
		public        bool
		reservedValid bool
		safeToCopy    bool
		valid         bool
	}{
		{"RuSt", true, false, true, true, true},
		{"ruSt", false, false, true, true, true},
		{"RUSt", true, true, true, true, true},
		{"Rust", true, false, false, true, false},
		{"RuST", true, false, true, false, true},
		{"RUST", true, true, true, false, true},
		{"rust", false, false, false, true, false},
		{"IHDR", true, true, true, false, true},
		{"tEXt", false, true, true, true, true},
	}

	for _, test := range tests {
		ct := MustParseChunkType(test.input)

		if ct.IsCritical() != test.critical {
			t.Errorf("%s: IsCritical expected %t", test.input, test.critical)
		}
		if ct.IsPublic() != test.public {
			t.Errorf("%s: IsPublic expected %t", test.input, test.public)
		}
		if ct.IsReservedBitValid() != test.reservedValid {
			t.Errorf("%s: IsReservedBitValid expected %t", test.input, test.reservedValid)
		}
		if ct.IsSafeToCopy() != test.safeToCopy {
			t.Errorf("%s: IsSafeToCopy expected %t", test.input, test.safeToCopy)
		}
		if ct.IsValid() != test.valid {
			t.Errorf("%s: IsValid expected %t", test.input, test.valid)
		}
		if err := ct.CheckValid(); (err == nil) != test.valid {
			t.Errorf("%s: CheckValid expected valid := %t, got %v", test.input, test.valid, err)
		}
	}
}

func TestChunkTypeIsValidReservedByteOnly(t *testing.T) {
	// Only the case of the third byte decides about validity.
	for _, s := range []string{"RuSt", "RUST", "ruSt", "rUST", "ruSt", "RuSt"} {
		if !MustParseChunkType(s).IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}

	for _, s := range []string{"Rust", "RUsT", "rust", "russ"} {
		if MustParseChunkType(s).IsValid() {
			t.Errorf("%s should be invalid", s)
		}
	}
}

func TestChunkTypeIsValidNonLetter(t *testing.T) {
	ct := ChunkType{'R', 'u', '1', 't'}
	if ct.IsValid() {
		t.Fatalf("%v with a digit is valid", ct)
	}
	if err := ct.CheckValid(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected InvalidType, got %v", err)
	}
}

func TestChunkTypePropertiesFlags(t *testing.T) {
	tests := []struct {
		input string
		props ChunkTypeProperties
		str   string
		json  string
	}{
		{"IHDR", 0, "", "null"},
		{"RuSt", Private | SafeToCopy, "PRIVATE,SAFE_TO_COPY", `["PRIVATE","SAFE_TO_COPY"]`},
		{"rust", Ancillary | Private | ReservedSet | SafeToCopy,
			"ANCILLARY,PRIVATE,RESERVED,SAFE_TO_COPY", `["ANCILLARY","PRIVATE","RESERVED","SAFE_TO_COPY"]`},
	}

	for _, test := range tests {
		props := MustParseChunkType(test.input).Properties()
		if props != test.props {
			t.Fatalf("%s: expected properties %v, got %v", test.input, test.props, props)
		}
		if s := props.String(); s != test.str {
			t.Fatalf("%s: expected string %q, got %q", test.input, test.str, s)
		}
		if j, err := props.MarshalJSON(); err != nil {
			t.Fatal(err)
		} else if string(j) != test.json {
			t.Fatalf("%s: expected JSON %s, got %s", test.input, test.json, j)
		}
	}
}

func TestChunkTypeIsStandard(t *testing.T) {
	for _, s := range []string{"IHDR", "IDAT", "IEND", "PLTE", "tEXt", "zTXt", "iTXt", "pHYs"} {
		if !MustParseChunkType(s).IsStandard() {
			t.Errorf("%s should be a standard chunk type", s)
		}
	}

	for _, s := range []string{"RuSt", "ruSt", "text", "ihdr"} {
		if MustParseChunkType(s).IsStandard() {
			t.Errorf("%s should not be a standard chunk type", s)
		}
	}
}

func TestMustParseChunkTypePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustParseChunkType did not panic")
		}
	}()

	MustParseChunkType("Ru1t")
}
