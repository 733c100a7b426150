package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"aapl", "AAPL"},
		{" msft ", "MSFT"},
		{"BRK.B", "BRK.B"},
		{"RDS-A", "RDS-A"},
		{"A", "A"},
	}
	for _, tc := range cases {
		got, err := NormalizeSymbol(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestNormalizeSymbolRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"TOOLONGSYMBOL",
		"BAD SYMBOL",
		"$AAPL",
		"1ABC",
		".DOT",
	}
	for _, in := range invalid {
		_, err := NormalizeSymbol(in)
		assert.ErrorIs(t, err, ErrInvalidSymbol, "%q", in)
	}
}
