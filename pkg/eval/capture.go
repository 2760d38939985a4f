package eval

import (
	"sort"

	"github.com/herohde/liberty/pkg/board"
)

// FindAttackers returns the squares of side's pieces that pseudolegally attack sq,
// used by move ordering to estimate whether a capture is likely to be recaptured.
func FindAttackers(b *board.Board, side board.Color, sq board.Square) []board.Square {
	var out []board.Square
	seen := make(map[board.Square]bool)
	for _, m := range b.GeneratePseudoLegal(side) {
		if m.To == sq && !seen[m.From] {
			seen[m.From] = true
			out = append(out, m.From)
		}
	}
	return out
}

// SortByNominalValue orders squares by the nominal value of the piece occupying them,
// low to high, so the cheapest attacker/defender is considered first.
func SortByNominalValue(b *board.Board, squares []board.Square) []board.Square {
	sort.SliceStable(squares, func(i, j int) bool {
		return NominalValue(b.At(squares[i])) < NominalValue(b.At(squares[j]))
	})
	return squares
}

// NominalValue is the nominal material value in centipawns of a piece kind,
// independent of side. It is a much coarser figure than Tapered's tables, used only
// for move-ordering comparisons (MVV-LVA, SEE-lite) where speed matters more than
// precision.
func NominalValue(p board.Piece) int {
	switch p.Kind() {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop, board.Camel, board.Zebra, board.Mann:
		return 300
	case board.Rook, board.Nightrider:
		return 500
	case board.Archbishop, board.Champion:
		return 800
	case board.Queen, board.Chancellor, board.Centaur, board.Elephant:
		return 1000
	case board.Amazon:
		return 1400
	case board.King:
		return 10000
	default:
		return 0
	}
}
