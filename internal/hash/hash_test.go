package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32C(t *testing.T) {
	// RFC 3720 B.4 test vector: 32 bytes of zeros
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))
	assert.NotEqual(t, CRC32C([]byte("a")), CRC32C([]byte("b")))
}

func TestDigest64(t *testing.T) {
	data := []byte("2001-12-12,TX,71")
	assert.Equal(t, Digest64(data), Digest64(append([]byte(nil), data...)))
	assert.NotEqual(t, Digest64(data), Digest64(data[1:]))

	// XXH64 of the empty input with seed 0
	assert.Equal(t, uint64(0xef46db3751d8e999), Digest64(nil))
}
