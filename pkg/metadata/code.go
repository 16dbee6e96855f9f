package metadata

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Numeric suffix ranges for asset codes. Normal assets and dummy assets
// draw from disjoint ranges so a dummy can never shadow a real asset.
const (
	NormalRangeFloor = 1
	NormalRangeCeil  = 8999
	DummyRangeFloor  = 9000
	DummyRangeCeil   = math.MaxInt32
)

var prefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,9}$`)

// AssetCode is a printable asset identifier: <PREFIX>-<NNNN>. Suffixes are
// zero-padded to four digits and grow wider past 9999.
type AssetCode struct {
	prefix string
	number int
}

func NewAssetCode(prefix string, number int) AssetCode {
	return AssetCode{prefix: prefix, number: number}
}

func (c AssetCode) String() string {
	return fmt.Sprintf("%s-%04d", c.prefix, c.number)
}

func (c AssetCode) Prefix() string {
	return c.prefix
}

func (c AssetCode) Number() int {
	return c.number
}

func (c AssetCode) IsDummy() bool {
	return c.number >= DummyRangeFloor
}

// NormalizePrefix trims and uppercases a raw prefix and reports whether the
// result is usable: a letter followed by up to nine letters or digits.
func NormalizePrefix(raw string) (string, bool) {
	prefix := strings.ToUpper(strings.TrimSpace(raw))
	if !prefixPattern.MatchString(prefix) {
		return "", false
	}
	return prefix, true
}

// CodeRange returns the inclusive suffix range for the asset kind.
func CodeRange(dummy bool) (int, int) {
	if dummy {
		return DummyRangeFloor, DummyRangeCeil
	}
	return NormalRangeFloor, NormalRangeCeil
}

// ParseAssetCode splits a formatted code back into prefix and number.
func ParseAssetCode(code string) (AssetCode, error) {
	idx := strings.LastIndex(code, "-")
	if idx <= 0 || idx == len(code)-1 {
		return AssetCode{}, fmt.Errorf("malformed asset code: %s", code)
	}

	prefix, ok := NormalizePrefix(code[:idx])
	if !ok {
		return AssetCode{}, fmt.Errorf("malformed asset code prefix: %s", code)
	}

	number, err := strconv.Atoi(code[idx+1:])
	if err != nil || number < 1 {
		return AssetCode{}, fmt.Errorf("malformed asset code suffix: %s", code)
	}

	return AssetCode{prefix: prefix, number: number}, nil
}
