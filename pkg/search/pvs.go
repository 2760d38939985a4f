package search

import (
	"context"
	"math"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/eval"
)

// Tuned late-move-reduction parameters, carried over from the reference engine's own
// tuned values: a base reduction plus a log(depth)*log(movecount) scaling term, eased
// off in PV nodes and increased when the position is not "improving" (the static eval
// two plies ago was at least as good as now).
const (
	lmrBase              = 0.42826194
	lmrFactor            = 0.36211678
	lmrPVReduction       = 0.6459082
	lmrImprovingIncrease = 0.5
)

// maxPly bounds the recursion depth of a single search call: beyond it, killers and
// the per-ply eval stack stop being tracked and the static evaluation is returned
// directly, the usual safety valve against a pathological check-extension chain.
const maxPly = 128

// PVS implements principal variation search: alpha-beta with a null-window
// re-search for every move after the first in a PV node, plus the standard
// pruning/reduction repertoire (mate distance pruning, check extension, reverse
// futility pruning, null-move pruning with zero-window verification, futility
// pruning, late move pruning, late move reductions) and a transposition table.
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Eval QuietSearch
}

func (p PVS) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runPVS{
		qs:      p.Eval,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		killers: NewKillers(maxPly),
		history: NewHistory(),
		evalSet: make([]bool, maxPly+2),
		evals:   make([]int, maxPly+2),
	}
	score, pv := run.search(ctx, b, 0, depth, eval.NegInfScore, eval.InfScore, true, false)
	if ctx.Err() != nil {
		return run.nodes, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runPVS struct {
	qs      QuietSearch
	tt      TranspositionTable
	noise   eval.Random
	killers *Killers
	history *History
	nodes   uint64

	evalSet []bool
	evals   []int
}

// search returns the score from the perspective of b.ToMove, and the principal
// variation from this node down, if one was found (nil on a TT cutoff, a non-PV
// fail-high, or a terminal/quiescence leaf).
func (r *runPVS) search(ctx context.Context, b *board.Board, ply, depth int, alpha, beta eval.Score, pvNode, nullAllowed bool) (eval.Score, []board.Move) {
	if ctx.Err() != nil {
		return eval.InvalidScore, nil
	}
	if alpha.Kind == eval.Win && b.Moves >= alpha.Value {
		return alpha, nil // mate distance pruning
	}

	inCheck := b.InCheck(b.ToMove)
	if inCheck {
		depth++ // check extension
	}

	if b.State.IsTerminal() {
		return eval.EvaluateTerminal(b), nil
	}
	if ply >= maxPly {
		return withNoise(eval.Tapered{}.Evaluate(ctx, b), r.noise, ctx, b), nil
	}
	if depth <= 0 {
		nodes, score := r.qs.QuietSearch(ctx, &Context{TT: r.tt, Noise: r.noise}, b)
		r.nodes += nodes
		return score, nil
	}

	r.nodes++
	hash := b.Hash

	var ttMove board.Move
	if r.tt != nil {
		if bound, d, score, move, ok := r.tt.Read(hash, b.Moves); ok {
			ttMove = move
			if !pvNode && d >= depth && ttUsable(bound, score, alpha, beta) {
				return score, nil
			}
		}
	}

	static := withNoise(eval.Tapered{}.Evaluate(ctx, b), r.noise, ctx, b)

	improving := false
	if !inCheck {
		if ply < 2 {
			improving = true
		} else if r.evalSet[ply-2] {
			improving = static.Value > r.evals[ply-2]
		} else {
			improving = true
		}
		r.evals[ply] = static.Value
		r.evalSet[ply] = true
	} else {
		r.evalSet[ply] = false
	}

	var futilityScore *eval.Score
	if !pvNode && !inCheck {
		// Reverse futility pruning: if even a generous margin below our static eval
		// still beats beta, assume the real search would too and cut off early.
		if depth <= 8 && beta.Kind == eval.Centipawn {
			d := depth
			if improving {
				d--
			}
			margin := 120 * d
			if static.Value-margin >= beta.Value {
				return eval.Centipawns(static.Value - margin), nil
			}
		}

		// Null move pruning: give the opponent a free move and see if we still beat
		// beta; if even passing keeps the advantage, the real move surely does too.
		if nullAllowed && depth >= 2 && static.Value >= beta.Value && hasNonPawnMaterial(b, b.ToMove) {
			reduction := 3 + depth/5
			nullDepth := depth - 1 - reduction
			if nullDepth < 0 {
				nullDepth = 0
			}
			child := b.MakeNullMove()
			childScore, _ := r.search(ctx, child, ply+1, nullDepth, pred(beta).Negate(), beta.Negate(), false, true)
			score := childScore.Negate()
			if !score.Less(beta) {
				if nullDepth > 0 {
					verif, _ := r.search(ctx, b, ply, nullDepth, pred(beta), beta, false, false)
					if !verif.Less(beta) {
						return score, nil
					}
				} else {
					return score, nil
				}
			}
		}

		// Futility pruning margin for the move loop below.
		if depth <= 4 && alpha.Kind == eval.Centipawn {
			margin := 125 * depth
			if static.Value < alpha.Value-margin {
				fs := eval.Centipawns(static.Value + margin)
				futilityScore = &fs
			}
		}
	}

	moves := b.GenerateLegal()
	picker := NewMovePicker(b, moves, ttMove, r.killers, ply, r.history)

	bestScore := eval.NegInfScore
	var bestPV []board.Move
	var failLows []board.Move
	moveCount := 0

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		isCap := IsCapture(b, m)

		if !isCap && bestScore.Kind != eval.Loss {
			if futilityScore != nil {
				bestScore = eval.Max(bestScore, *futilityScore)
				break
			}
			if depth <= 2 && moveCount >= 5<<uint(depth) {
				break // late move pruning
			}
		}

		child := b.Clone()
		child.PushMove(m)
		moveCount++

		reduction := 0
		if !isCap && depth >= 3 && moveCount > 5 && !child.InCheck(child.ToMove) {
			red := lmrBase + math.Log(float64(depth))*math.Log(float64(moveCount))*lmrFactor
			if pvNode {
				red -= lmrPVReduction
			}
			if !improving {
				red += lmrImprovingIncrease
			}
			reduction = clampInt(int(red), 0, depth/2)
		}

		var childScore eval.Score
		var childPV []board.Move
		if (pvNode && moveCount > 1) || reduction > 0 {
			s, _ := r.search(ctx, child, ply+1, depth-1-reduction, pred(alpha).Negate(), alpha.Negate(), false, true)
			s = s.Negate()
			if alpha.Less(s) {
				s2, pv2 := r.search(ctx, child, ply+1, depth-1, beta.Negate(), alpha.Negate(), pvNode, true)
				childScore, childPV = s2.Negate(), pv2
			} else {
				childScore = s
			}
		} else {
			s2, pv2 := r.search(ctx, child, ply+1, depth-1, beta.Negate(), alpha.Negate(), pvNode, true)
			childScore, childPV = s2.Negate(), pv2
		}

		if ctx.Err() != nil {
			return eval.InvalidScore, nil
		}

		if !childScore.Less(beta) {
			if !isCap {
				r.killers.Store(ply, m)
				for _, fl := range failLows {
					r.history.Malus(b.ToMove, b.At(fl.From), fl.To, depth)
				}
				r.history.Bonus(b.ToMove, b.At(m.From), m.To, depth)
			}
			if r.tt != nil {
				r.tt.Write(hash, LowerBound, b.Moves, depth, childScore, m)
			}
			return childScore, nil
		}
		if bestScore.Less(childScore) {
			bestScore = childScore
		}
		if alpha.Less(childScore) {
			alpha = childScore
			bestPV = append([]board.Move{m}, childPV...)
		} else if !isCap {
			failLows = append(failLows, m)
		}
	}

	if r.tt != nil {
		bound, bestMove := UpperBound, ttMove
		if len(bestPV) > 0 {
			bound, bestMove = ExactBound, bestPV[0]
		}
		r.tt.Write(hash, bound, b.Moves, depth, bestScore, bestMove)
	}
	return bestScore, bestPV
}

// ttUsable reports whether a transposition table entry found at least as deep as the
// current search can be returned directly instead of searched again.
func ttUsable(bound Bound, score, alpha, beta eval.Score) bool {
	switch bound {
	case ExactBound:
		return true
	case LowerBound:
		return !score.Less(beta)
	case UpperBound:
		return !alpha.Less(score)
	default:
		return false
	}
}

// pred returns s shifted one unit toward negative infinity: one centipawn for a
// Centipawn score, a mate one move later for Win and one move earlier for Loss
// (Loss stops at 0). Used to build the null-window
// (alpha, alpha+1) probes that null-move and late-move-reduction re-searches need.
func pred(s eval.Score) eval.Score {
	switch s.Kind {
	case eval.Centipawn:
		return eval.Centipawns(s.Value - 1)
	case eval.Win:
		return eval.WinIn(s.Value + 1)
	default:
		return eval.LossIn(maxInt(s.Value-1, 0))
	}
}

func hasNonPawnMaterial(b *board.Board, side board.Color) bool {
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			p := b.At(board.Square{Row: row, Col: col})
			if p == board.NoPiece || p.Side() != side {
				continue
			}
			if p.Kind() != board.Pawn && p.Kind() != board.King {
				return true
			}
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
