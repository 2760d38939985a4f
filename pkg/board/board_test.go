package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPositionLegalMoveCount(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.GenerateLegal()
	assert.Len(t, moves, 20)
}

func TestMakeMoveFlipsSideToMove(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)

	b.PushMove(m)
	assert.Equal(t, board.Black, b.ToMove)
	assert.Equal(t, board.Pawn.Owned(board.White), b.At(board.Square{Row: 3, Col: 4}))
	assert.Equal(t, board.NoPiece, b.At(board.Square{Row: 1, Col: 4}))
}

func TestDoublePawnAdvanceSetsEnPassant(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	b.PushMove(m)

	require.NotNil(t, b.EnPassant)
	assert.Equal(t, 4, b.EnPassant.Col)
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := board.ParseMove(s)
		require.NoError(t, err)
		require.Contains(t, b.GenerateLegal(), m, s)
		b.PushMove(m)
	}

	assert.Equal(t, board.Checkmate, b.State)
	assert.Equal(t, board.White, b.Loser)
}

func TestHashIsRecomputedConsistently(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	want := b.Shared.Zobrist.HashBoard(b)
	assert.Equal(t, want, b.Hash)

	m, err := board.ParseMove("g1f3")
	require.NoError(t, err)
	b.PushMove(m)
	assert.Equal(t, b.Shared.Zobrist.HashBoard(b), b.Hash)
}

func TestCloneIsIndependent(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	c := b.Clone()
	m, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	c.PushMove(m)

	assert.Equal(t, board.White, b.ToMove)
	assert.Equal(t, board.Black, c.ToMove)
	assert.Same(t, b.Shared, c.Shared)
}
