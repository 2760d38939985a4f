package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareString(t *testing.T) {
	tests := []struct {
		sq   board.Square
		want string
	}{
		{board.Square{Row: 0, Col: 0}, "a1"},
		{board.Square{Row: 0, Col: 25}, "z1"},
		{board.Square{Row: 0, Col: 26}, "aa1"},
		{board.Square{Row: 0, Col: 27}, "ab1"},
		{board.Square{Row: 11, Col: 51}, "az12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sq.String())
	}
}

func TestParseSquareRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "h8", "z1", "aa1", "ab12", "az100"} {
		sq, err := board.ParseSquare(s)
		require.NoError(t, err)
		assert.Equal(t, s, sq.String())
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "1a", "a", "a0-", "aa"} {
		_, err := board.ParseSquare(s)
		assert.Error(t, err, s)
	}
}
