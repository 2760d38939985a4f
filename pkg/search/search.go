// Package search contains the game tree search: principal variation search with the
// usual pruning repertoire, quiescence search, a lock-free transposition table and the
// move ordering heuristics that feed them. It depends only on pkg/board and pkg/eval;
// time control and UCI/console wiring live one layer up, in searchctl and pkg/engine.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/eval"
)

// ErrHalted indicates the search was halted (via context cancellation) before it
// could return a definitive result for the requested depth.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found for some search depth.
type PV struct {
	Depth int           // depth of search, in plies
	Moves []board.Move  // principal variation, deepest-first move last
	Score eval.Score    // evaluation at depth, relative to the side to move at the root
	Nodes uint64        // interior/leaf nodes searched
	Time  time.Duration // time taken by search
	Hash  float64       // transposition table utilization [0;1], 0 if no table is used
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}

// Context carries the parts of search state that are shared across a whole search
// rather than threaded explicitly through every recursive call: the transposition
// table and the evaluation noise generator used to make weaker play non-deterministic.
type Context struct {
	TT    TranspositionTable
	Noise eval.Random
}

// Search implements a fixed-depth search of the game tree, returning nodes visited,
// the score and the principal variation. A zero-value []board.Move PV is returned if
// the position is a TT cutoff or immediately terminal. Implementations must be safe to
// call from a single goroutine at a time per Context; the Context's TT may be shared.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch implements a quiescence search: a search restricted to "noisy" moves
// (captures, promotions, check evasions) that only stops once the position is quiet,
// used as the leaf evaluation of the main search so it never evaluates a position in
// the middle of a capture sequence.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// withNoise adds n's random jitter to a Centipawn score, used to make weak play
// variable instead of always picking the engine's single best line. Win/Loss scores
// are never perturbed: a known mate stays a known mate.
func withNoise(s eval.Score, n eval.Random, ctx context.Context, b *board.Board) eval.Score {
	if s.Kind != eval.Centipawn {
		return s
	}
	jitter := n.Evaluate(ctx, b)
	if jitter.Kind != eval.Centipawn {
		return s
	}
	return eval.Centipawns(s.Value + jitter.Value)
}
