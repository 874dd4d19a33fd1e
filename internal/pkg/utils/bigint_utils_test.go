package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	v, err := ParseEther("0.25")
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", v.String())

	v, err = ParseEther("0.01")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000", v.String())

	v, err = ParseEther("3")
	require.NoError(t, err)
	assert.Equal(t, "3000000000000000000", v.String())

	v, err = ParseEther(".5")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", v.String())
}

func TestParseUnitsRejectsBadInput(t *testing.T) {
	_, err := ParseUnits("1.234", 2)
	assert.Error(t, err)

	_, err = ParseUnits("abc", 18)
	assert.Error(t, err)

	_, err = ParseUnits("", 18)
	assert.Error(t, err)
}

func TestMustParseEtherPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseEther("not-a-number") })
}

func TestFormatBigInt(t *testing.T) {
	assert.Equal(t, "1.2345", FormatBigInt(big.NewInt(1234500000000000000), 18))
	assert.Equal(t, "0.25", FormatBigInt(MustParseEther("0.25"), 18))
	assert.Equal(t, "0.000000001", FormatBigInt(big.NewInt(1e9), 18))
	assert.Equal(t, "42", FormatBigInt(big.NewInt(42), 0))
	assert.Equal(t, "-1.5", FormatBigInt(big.NewInt(-15), 1))
	assert.Equal(t, "0", FormatBigInt(nil, 18))
	assert.Equal(t, "0", FormatBigInt(big.NewInt(0), 18))
}

func TestSplitListAndIntersects(t *testing.T) {
	assert.Equal(t, []string{"all", "mocks"}, SplitList(" all, ,mocks "))
	assert.Empty(t, SplitList("  "))
	assert.True(t, Intersects([]string{"all", "mocks"}, []string{"mocks"}))
	assert.False(t, Intersects([]string{"all", "mocks"}, []string{"frontend"}))
}
