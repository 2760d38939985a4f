package eval

import (
	"context"

	"github.com/herohde/liberty/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the score relative to the side to move: positive favors
	// whoever is to move next.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Tapered is the engine's primary evaluator: a hand-tuned, phase-blended function of
// material, edge avoidance, pawn-blocking penalties, mobility and pawn advancement,
// ported term-for-term from the reference tuner's trained weights.
type Tapered struct{}

func (Tapered) Evaluate(_ context.Context, b *board.Board) Score {
	return Centipawns(int(raw(b)))
}

// EvaluateTerminal returns the score of a position whose Board.State is terminal,
// relative to the side to move. Every draw kind scores as a draw; Checkmate and
// Elimination score as a loss for the side recorded as Board.Loser, counted in moves
// (not plies) to the current position so mate scores stay comparable across depths.
func EvaluateTerminal(b *board.Board) Score {
	switch b.State {
	case board.Checkmate, board.Elimination:
		if b.Loser == b.ToMove {
			return LossIn(b.Moves)
		}
		return WinIn(b.Moves)
	default:
		return DrawScore
	}
}

// bestPromotionValue returns the middlegame/endgame value of the most valuable piece
// a pawn may promote to under the given promotion set, used to scale the
// advanced-pawn bonus: a variant whose promotion set excludes the queen must not be
// scored as if an advancing pawn were always worth a queen.
func bestPromotionValue(opts []board.Piece) (mg, eg int32) {
	for _, opt := range opts {
		kind := int(opt.Kind()) - 1
		if v := pieceValuesMG[kind]; v > mg {
			mg = v
		}
		if v := pieceValuesEG[kind]; v > eg {
			eg = v
		}
	}
	return mg, eg
}

// raw computes the tapered evaluation directly over the board grid, matching the
// reference engine's hot per-node loop rather than materializing an intermediate
// feature vector (see Features in a tuning build, not reproduced here).
func raw(b *board.Board) int32 {
	var value int32 // packed (mg, eg)
	var material int32

	mgPromo, egPromo := bestPromotionValue(b.Shared.PromotionOptions)

	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			sq := board.Square{Row: row, Col: col}
			p := b.At(sq)
			if p == board.NoPiece {
				continue
			}

			multiplier := int32(1)
			blockRow := row + 1
			if p < 0 {
				multiplier = -1
				blockRow = row - 1
			}

			kind := int(p.Kind()) - 1
			material += endgameFactor[kind]

			pieceValue := pack(pieceValuesMG[kind], pieceValuesEG[kind])

			mobility := int32(b.Mobility(sq))
			pieceValue += pack(mgMobilityBonus[kind]*mobility, egMobilityBonus[kind]*mobility)

			hDist := minInt(row, b.Height-1-row)
			vDist := minInt(col, b.Width-1-col)
			idx := edgeIndex(hDist, vDist)
			if idx < EdgeParameterCount {
				pieceValue -= pack(mgEdgeAvoidance[kind][idx], egEdgeAvoidance[kind][idx])
			}

			if p.Kind() == board.Pawn {
				if blockRow >= 0 && blockRow < b.Height {
					blocker := b.At(board.Square{Row: blockRow, Col: col})
					if blocker != board.NoPiece {
						bkind := int(blocker.Kind()) - 1
						if (blocker < 0) != (p < 0) {
							pieceValue -= pack(mgEnemyPawnPenalty[bkind], egEnemyPawnPenalty[bkind])
						} else {
							pieceValue -= pack(mgFriendlyPawnPenalty[bkind], egFriendlyPawnPenalty[bkind])
						}
					}
				}

				squaresToGo := row
				if p > 0 {
					squaresToGo = b.Height - 1 - row
				}
				if squaresToGo != 0 {
					divisor := int32(squaresToGo)*pawnScaleFactor + pawnScalingBonus
					if divisor != 0 {
						pieceValue += pack(mgPromo/divisor, egPromo/divisor)
					}
				}
			}

			value += pieceValue * multiplier
		}
	}

	middlegame := unpackMG(value)
	endgame := unpackEG(value)
	if material > endgameThreshold {
		material = endgameThreshold
	}
	score := (material*middlegame + (endgameThreshold-material)*endgame) / endgameThreshold
	if b.ToMove == board.Black {
		score *= -1
	}
	return score + tempoBonus
}
