package engine_test

import (
	"context"
	"testing"

	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/herohde/liberty/pkg/engine"
	"github.com/herohde/liberty/pkg/eval"
	"github.com/herohde/liberty/pkg/search"
	"github.com/herohde/liberty/pkg/search/searchctl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(ctx context.Context) *engine.Engine {
	s := search.PVS{Eval: search.Quiescence{Eval: eval.Tapered{}}}
	return engine.New(ctx, "test", "suite", s, engine.WithOptions(engine.Options{Depth: 2}))
}

func TestNewStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveAppliesLegalMoveAndRejectsIllegal(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.Error(t, e.Move(ctx, "e2e4")) // no longer a pawn on e2
}

func TestTakeBackRestoresPriorPosition(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	before := e.Position()
	require.NoError(t, e.Move(ctx, "e2e4"))
	require.NotEqual(t, before, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, before, e.Position())

	require.Error(t, e.TakeBack(ctx)) // nothing left to undo
}

func TestResetReplacesCurrentGame(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	require.NoError(t, e.Reset(ctx, fen.Initial))

	assert.Equal(t, fen.Initial, e.Position())
	require.Error(t, e.TakeBack(ctx)) // undo history cleared by Reset
}

func TestAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	out, err := e.Analyze(ctx, searchctl.Options{})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, searchctl.Options{})
	assert.Error(t, err)

	pv, err := e.Halt(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, pv.Moves)

	for range out {
		// drain remaining PVs published before Halt took effect.
	}
}

func TestEvaluateReportsDrawAtStalemate(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	require.NoError(t, e.Reset(ctx, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"))
	assert.Equal(t, eval.DrawScore, e.Evaluate(ctx))
}
