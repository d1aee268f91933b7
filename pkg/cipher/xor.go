// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cipher obscures hidden messages with a repeating-key XOR. This is
// no encryption; it only keeps a message from being readable at first sight.
package cipher

// XOR combines each byte of data with the key's bytes, repeating the key as
// necessary. Applying XOR twice with the same key restores the data. An empty
// key returns an unchanged copy.
func XOR(data []byte, key string) []byte {
	out := make([]byte, len(data))
	if len(key) == 0 {
		copy(out, data)
		return out
	}

	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

// Encrypt obscures a message with the key.
func Encrypt(msg []byte, key string) []byte {
	return XOR(msg, key)
}

// Decrypt reverts Encrypt.
func Decrypt(data []byte, key string) []byte {
	return XOR(data, key)
}
