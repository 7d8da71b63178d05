package brokerage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100.00"},
		{"250.50", "250.50"},
		{" 19.9 ", "19.90"},
		{"-3.2", "-3.20"},
		// Half-up rounding at the third decimal place.
		{"50.005", "50.01"},
		{"2.675", "2.68"},
		{"0.004", "0.00"},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		require.NoError(t, err, "ParseMoney(%q)", tt.in)
		assert.Equal(t, tt.want, got.String(), "ParseMoney(%q)", tt.in)
	}
}

func TestParseMoneyInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12.3.4", "1,000"} {
		_, err := ParseMoney(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ParseMoney(%q)", in)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	assert.Equal(t, "300.50", M(100.25).Add(M(200.25)).String())
	assert.Equal(t, "-99.75", M(100.25).Sub(M(200)).String())
	assert.Equal(t, "-5.00", M(5).Neg().String())
	assert.Equal(t, "1900.00", M(190).Mul(10).String())
	assert.Equal(t, "570.00", M(190).Mul(3).String())

	assert.True(t, M(0).IsZero())
	assert.True(t, M(1.5).IsPositive())
	assert.True(t, M(-1.5).IsNegative())
	assert.True(t, M(1).LessThan(M(2)))
	assert.True(t, M(2).GreaterThanOrEqual(M(2)))
	assert.True(t, M(2).Equal(M(2.00)))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(M(1900))
	require.NoError(t, err)
	assert.Equal(t, `"1900.00"`, string(data))

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"42.50"`), &fromString))
	assert.Equal(t, "42.50", fromString.String())

	// Bare numbers are accepted too.
	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`42.5`), &fromNumber))
	assert.True(t, fromString.Equal(fromNumber))

	var bad Money
	assert.ErrorIs(t, json.Unmarshal([]byte(`"oops"`), &bad), ErrInvalidAmount)
}

func TestMoneyDisplay(t *testing.T) {
	assert.Equal(t, "$1,900.00", M(1900).Display("USD"))
	assert.Equal(t, "1900.00", M(1900).Display("???"))
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("10")
	require.NoError(t, err)
	assert.Equal(t, Quantity(10), q)

	for _, in := range []string{"", "abc", "1.5", "0", "-3"} {
		_, err := ParseQuantity(in)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "ParseQuantity(%q)", in)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	for in, want := range map[string]string{"aapl": "AAPL", " Tsla ": "TSLA", "googl": "GOOGL"} {
		got, err := NormalizeSymbol(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "  ", "AA PL", "A-B"} {
		_, err := NormalizeSymbol(in)
		assert.ErrorIs(t, err, ErrInvalidSymbol, "NormalizeSymbol(%q)", in)
	}
}
