package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePieceCharRoundTrip(t *testing.T) {
	for _, c := range "pnbrqkaclzxihumeow" {
		p, err := board.ParsePieceChar(c)
		require.NoError(t, err)
		assert.Equal(t, board.Black, p.Side())
		assert.Equal(t, c, p.Char())

		white, err := board.ParsePieceChar(c - 'a' + 'A')
		require.NoError(t, err)
		assert.Equal(t, board.White, white.Side())
	}
}

func TestParsePieceCharInvalid(t *testing.T) {
	_, err := board.ParsePieceChar('j')
	assert.Error(t, err)
}

func TestCanCapture(t *testing.T) {
	// A wall (attack 1) cannot capture a pawn (defence 1): attack must strictly exceed.
	assert.False(t, board.Wall.CanCapture(board.Pawn))
	// A rook (attack 2) can capture a pawn (defence 1).
	assert.True(t, board.Rook.CanCapture(board.Pawn))
	// Nothing in the standard set can capture a wall (defence 2) except a powerful
	// attacker such as a king.
	assert.False(t, board.Rook.CanCapture(board.Wall))
	assert.True(t, board.King.CanCapture(board.Wall))
}

func TestOwnedAndKind(t *testing.T) {
	p := board.Queen.Owned(board.Black)
	assert.Equal(t, board.Black, p.Side())
	assert.Equal(t, board.Queen, p.Kind())
}
