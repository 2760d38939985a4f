package search

import (
	"context"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/eval"
)

// Quiescence is the QuietSearch used to terminate the main search on a quiet
// position: it keeps searching captures, promotions and El Vaticano moves (plus every
// move when in check) until none remain, so the static evaluation is never taken in
// the middle of an exchange.
type Quiescence struct {
	Eval eval.Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{eval: q.Eval, sctx: sctx}
	score := run.search(ctx, b, eval.NegInfScore, eval.InfScore)
	return run.nodes, score
}

type runQuiescence struct {
	eval  eval.Evaluator
	sctx  *Context
	nodes uint64
}

func (r *runQuiescence) search(ctx context.Context, b *board.Board, alpha, beta eval.Score) eval.Score {
	if err := ctx.Err(); err != nil {
		return eval.ZeroScore
	}
	if b.State.IsTerminal() {
		return eval.EvaluateTerminal(b)
	}

	r.nodes++

	standPat := withNoise(r.eval.Evaluate(ctx, b), r.sctx.Noise, ctx, b)
	if beta.Less(standPat) || standPat == beta {
		return standPat
	}
	if alpha.Less(standPat) {
		alpha = standPat
	}

	inCheck := b.InCheck(b.ToMove)
	moves := b.GenerateLegalQuiescence()
	if !inCheck && len(moves) == 0 {
		return alpha
	}

	picker := NewMovePicker(b, moves, board.Move{}, nil, 0, nil)
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		child := b.Clone()
		child.PushMove(m)

		score := r.search(ctx, child, beta.Negate(), alpha.Negate()).Negate()
		if beta.Less(score) || score == beta {
			return score
		}
		if alpha.Less(score) {
			alpha = score
		}
	}
	return alpha
}
