package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"-1.005", "-1.01"},
		{"33.333333", "33.33"},
		{"66.666666", "66.67"},
		{"0.5", "0.5"},
		{"100", "100"},
	}
	for _, tt := range tests {
		got := RoundCurrency(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "RoundCurrency(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestRoundCurrency_Idempotent(t *testing.T) {
	for _, s := range []string{"0.001", "0.005", "12.345", "-7.777", "1e-9", "123456789.999"} {
		once := RoundCurrency(dec(s))
		twice := RoundCurrency(once)
		assert.True(t, once.Equal(twice), "RoundCurrency not idempotent for %s", s)
	}
}

func TestIsCents(t *testing.T) {
	assert.True(t, IsCents(dec("10")))
	assert.True(t, IsCents(dec("10.5")))
	assert.True(t, IsCents(dec("10.55")))
	assert.True(t, IsCents(dec("-0.01")))
	assert.False(t, IsCents(dec("10.555")))
	assert.False(t, IsCents(dec("0.001")))
}

func TestParse(t *testing.T) {
	d, err := Parse("12.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("12.5")))

	_, err = Parse("12.505")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal places")

	_, err = Parse("abc")
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	parts := Split(dec("100"), 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "33.34", parts[0].StringFixed(2))
	assert.Equal(t, "33.33", parts[1].StringFixed(2))
	assert.Equal(t, "33.33", parts[2].StringFixed(2))

	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	assert.True(t, sum.Equal(dec("100")))
}

func TestSplit_Even(t *testing.T) {
	parts := Split(dec("10.00"), 4)
	for _, p := range parts {
		assert.Equal(t, "2.50", p.StringFixed(2))
	}
}

func TestSplit_Negative(t *testing.T) {
	parts := Split(dec("-0.05"), 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "-0.03", parts[0].StringFixed(2))
	assert.Equal(t, "-0.02", parts[1].StringFixed(2))
}

func TestSplit_NoParts(t *testing.T) {
	assert.Nil(t, Split(dec("10"), 0))
}
