package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetCodeFormatting(t *testing.T) {
	code := NewAssetCode("LAP", 1)
	assert.Equal(t, "LAP-0001", code.String())

	code = NewAssetCode("LAP", 12345)
	assert.Equal(t, "LAP-12345", code.String())
}

func TestAssetCodeDummyRange(t *testing.T) {
	assert.False(t, NewAssetCode("LAP", 8999).IsDummy())
	assert.True(t, NewAssetCode("LAP", 9000).IsDummy())
}

func TestNormalizePrefix(t *testing.T) {
	prefix, ok := NormalizePrefix(" lap ")
	assert.True(t, ok)
	assert.Equal(t, "LAP", prefix)

	_, ok = NormalizePrefix("")
	assert.False(t, ok)

	_, ok = NormalizePrefix("LA P")
	assert.False(t, ok)

	_, ok = NormalizePrefix("9LAP")
	assert.False(t, ok)
}

func TestParseAssetCode(t *testing.T) {
	code, err := ParseAssetCode("LAP-0042")
	assert.NoError(t, err)
	assert.Equal(t, 42, code.Number())

	_, err = ParseAssetCode("LAP0042")
	assert.Error(t, err)

	_, err = ParseAssetCode("LAP-")
	assert.Error(t, err)

	_, err = ParseAssetCode("-0042")
	assert.Error(t, err)
}

func TestCodeRange(t *testing.T) {
	lo, hi := CodeRange(false)
	assert.Equal(t, NormalRangeFloor, lo)
	assert.Equal(t, NormalRangeCeil, hi)

	lo, _ = CodeRange(true)
	assert.Equal(t, DummyRangeFloor, lo)
}

func TestNewStatus(t *testing.T) {
	status, err := NewStatus("in_stock")
	assert.NoError(t, err)
	assert.Equal(t, StatusInStock, status)

	_, err = NewStatus("lost_in_space")
	assert.Error(t, err)
}
