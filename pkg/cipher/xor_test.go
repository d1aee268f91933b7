// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cipher

import (
	"bytes"
	"testing"
)

func TestXOR(t *testing.T) {
	tests := []struct {
		data []byte
		key  string
		out  []byte
	}{
		{[]byte("abc"), "", []byte("abc")},
		{[]byte{0x00, 0x00, 0x00}, "ab", []byte("aba")},
		{[]byte{0x01, 0x02, 0x03, 0x04}, "\x01", []byte{0x00, 0x03, 0x02, 0x05}},
		{nil, "key", []byte{}},
	}

	for _, test := range tests {
		if out := XOR(test.data, test.key); !bytes.Equal(out, test.out) {
			t.Fatalf("XOR(%x, %q): expected %x, got %x", test.data, test.key, test.out, out)
		}
	}
}

func TestEncryptDecrypt(t *testing.T) {
	msg := []byte("Secret message")

	for _, key := range []string{"", "k", "key", "a much longer key than the message"} {
		enc := Encrypt(msg, key)
		if key != "" && bytes.Equal(enc, msg) {
			t.Fatalf("key %q did not change the message", key)
		}
		if dec := Decrypt(enc, key); !bytes.Equal(dec, msg) {
			t.Fatalf("key %q: expected %q, got %q", key, msg, dec)
		}
	}
}

func TestXORDoesNotModifyInput(t *testing.T) {
	data := []byte("hello")
	_ = XOR(data, "")
	_ = XOR(data, "xyz")

	if string(data) != "hello" {
		t.Fatalf("input was modified: %q", data)
	}
}
