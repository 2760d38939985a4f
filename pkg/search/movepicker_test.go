package search_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/herohde/liberty/pkg/search"
	"github.com/stretchr/testify/require"
)

func TestMovePickerReturnsTTMoveFirst(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.GenerateLegal()
	tt, err := board.ParseMove("g1f3")
	require.NoError(t, err)

	picker := search.NewMovePicker(b, moves, tt, nil, 0, nil)
	first, ok := picker.Next()
	require.True(t, ok)
	require.Equal(t, tt, first)
}

func TestMovePickerExhaustsAllMoves(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := b.GenerateLegal()
	picker := search.NewMovePicker(b, moves, board.Move{}, nil, 0, nil)

	count := 0
	for {
		if _, ok := picker.Next(); !ok {
			break
		}
		count++
	}
	require.Equal(t, len(moves), count)
}

func TestMovePickerPrioritizesCaptures(t *testing.T) {
	// White pawn can capture a pawn on d5, or make quiet moves elsewhere.
	b, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	moves := b.GenerateLegal()
	picker := search.NewMovePicker(b, moves, board.Move{}, nil, 0, nil)

	first, ok := picker.Next()
	require.True(t, ok)
	require.True(t, search.IsCapture(b, first), "first move out of the picker should be the only capture available: %v", first)
}
