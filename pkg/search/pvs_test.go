package search_test

import (
	"context"
	"testing"

	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/herohde/liberty/pkg/eval"
	"github.com/herohde/liberty/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() search.PVS {
	return search.PVS{Eval: search.Quiescence{Eval: eval.Tapered{}}}
}

func TestPVSFindsMateInOne(t *testing.T) {
	// White to move: Qh1-h7# is mate, the king on g6 guards the capture square.
	b, err := fen.Decode("7k/8/6K1/8/8/8/8/7Q w - - 0 1")
	require.NoError(t, err)

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score, moves, err := newEngine().Search(context.Background(), sctx, b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	assert.Equal(t, eval.Win, score.Kind)
	assert.Equal(t, "h1h7", moves[0].String())
}

func TestPVSRecognizesStalemateAsDraw(t *testing.T) {
	// Black to move, no legal moves, not in check: stalemate.
	b, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score, _, err := newEngine().Search(context.Background(), sctx, b, 1)
	require.NoError(t, err)
	assert.Equal(t, eval.DrawScore, score)
}

func TestPVSWithTranspositionTableMatchesWithout(t *testing.T) {
	b, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	sctx1 := &search.Context{TT: search.NoTranspositionTable{}}
	_, score1, _, err := newEngine().Search(context.Background(), sctx1, b, 2)
	require.NoError(t, err)

	sctx2 := &search.Context{TT: search.NewTranspositionTable(context.Background(), 1<<20)}
	_, score2, _, err := newEngine().Search(context.Background(), sctx2, b, 2)
	require.NoError(t, err)

	assert.Equal(t, score1, score2)
}
