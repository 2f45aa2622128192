package hash

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data. It guards the
// small metadata record.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Digest64 returns the XXH64 digest of data. It guards column bodies, which
// can be large enough for the hashing rate to matter.
func Digest64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
