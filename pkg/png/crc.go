// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package png

import (
	"hash/crc32"
)

// crcTable is the IEEE 802.3 table, as required by the PNG specification.
var crcTable = crc32.IEEETable

// calculateCRC returns the CRC32 of a chunk's type code followed by its data.
// The length field is not covered.
func calculateCRC(ct ChunkType, data []byte) uint32 {
	crc := crc32.Update(0, crcTable, ct[:])
	return crc32.Update(crc, crcTable, data)
}
