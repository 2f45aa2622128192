//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow(t *testing.T) {
	assert.Equal(t, uint32(0), Row(0))
	assert.Equal(t, uint32(math.MaxUint32), Row(math.MaxUint32))
	assert.Panics(t, func() { Row(-1) })
	assert.Panics(t, func() { Row(math.MaxUint32 + 1) })
}

func TestIntToUint32(t *testing.T) {
	got, err := IntToUint32(123)
	assert.NoError(t, err)
	assert.Equal(t, uint32(123), got)

	_, err = IntToUint32(-1)
	assert.Error(t, err)

	_, err = IntToUint32(math.MaxUint32 + 1)
	assert.Error(t, err)
}
