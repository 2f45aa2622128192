// Package hash provides the checksums used by the table format.
//
// # CRC32-Castagnoli (CRC32C)
//
// The metadata record is checked with CRC32C, which Go's hash/crc32
// accelerates in hardware on x86 (SSE4.2) and ARM.
//
// # XXH64
//
// Column bodies are checked with XXH64 over their uncompressed bytes:
//
//	sum := hash.Digest64(payload)
package hash
