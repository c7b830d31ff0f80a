package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"15000", 15000},
		{"15000.00", 15000},
		{"0", 0},
		{" 2500 ", 2500},
		{".0", 0},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-5000", "15000.50", "1.2.3", "Rp 5000"} {
		_, err := ParseAmount(in)
		require.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10", 1000},
		{"7.5", 750},
		{"0.25", 25},
		{"100", 10000},
	}
	for _, tc := range cases {
		got, err := ParsePercent(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePercentRejects(t *testing.T) {
	for _, in := range []string{"", "-5", "7.125", "ten"} {
		_, err := ParsePercent(in)
		require.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "15000", FormatAmount(15000))
	require.Equal(t, "0", FormatAmount(0))
}

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "10", FormatPercent(1000))
	require.Equal(t, "7.5", FormatPercent(750))
	require.Equal(t, "0.25", FormatPercent(25))
	require.Equal(t, "100", FormatPercent(10000))
}
