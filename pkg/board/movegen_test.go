package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the number of leaf positions reachable in depth plies.
func perft(b *board.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegal()
	if depth == 1 {
		return len(moves)
	}
	total := 0
	for _, m := range moves {
		c := b.Clone()
		c.Make(m)
		total += perft(c, depth-1)
	}
	return total
}

func TestPerftInitialPositionDepth1And2(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, 20, perft(b, 1))
	assert.Equal(t, 400, perft(b, 2))
}

func TestCastlingMovesWhenUnobstructed(t *testing.T) {
	b, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	moves := b.GenerateLegal()
	kingSide, err := board.ParseMove("e1g1")
	require.NoError(t, err)
	queenSide, err := board.ParseMove("e1c1")
	require.NoError(t, err)

	assert.Contains(t, moves, kingSide)
	assert.Contains(t, moves, queenSide)
}

func TestCastlingBlockedThroughCheck(t *testing.T) {
	// The f1 square is covered by the black rook on f8, so kingside castling (which
	// passes the king through f1) is illegal even though f1 and g1 are empty.
	b, err := fen.Decode("r4r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	moves := b.GenerateLegal()
	kingSide, err := board.ParseMove("e1g1")
	require.NoError(t, err)
	assert.NotContains(t, moves, kingSide)
}

func TestElVaticanoRemovesInterveningPiece(t *testing.T) {
	// White bishops on c1 and c3 with a black pawn on c2 between them: moving the c1
	// bishop "onto" c3 removes the pawn and leaves both bishops in place.
	b, err := fen.Decode("8/8/8/8/8/2B5/2p5/2B3K1 w - - 0 1")
	require.NoError(t, err)
	// Give Black a king so the position is well-formed.
	b.SetPiece(board.Square{Row: 7, Col: 7}, board.King.Owned(board.Black))
	b.BlackKings = []board.Square{{Row: 7, Col: 7}}

	m := board.Move{From: board.Square{Row: 0, Col: 2}, To: board.Square{Row: 2, Col: 2}}
	require.Contains(t, b.GenerateLegal(), m)

	b.PushMove(m)
	assert.Equal(t, board.NoPiece, b.At(board.Square{Row: 1, Col: 2}))
	assert.Equal(t, board.Bishop.Owned(board.White), b.At(board.Square{Row: 0, Col: 2}))
	assert.Equal(t, board.Bishop.Owned(board.White), b.At(board.Square{Row: 2, Col: 2}))
}
