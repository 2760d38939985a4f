package search

import (
	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/eval"
)

// IsCapture reports whether m captures a piece when played against b, including El
// Vaticano (which captures the piece between the two bishops rather than the piece on
// the destination square).
func IsCapture(b *board.Board, m board.Move) bool {
	return b.At(m.To) != board.NoPiece || isElVaticanoCapture(b, m)
}

// isElVaticanoCapture reports whether m is a bishop-onto-bishop move that triggers El
// Vaticano: the destination square holds a friendly bishop rather than an enemy piece,
// so the ordinary "piece on the destination square" notion of capture misses it, and
// IsCapture must special-case it to still count as noisy for quiescence purposes.
func isElVaticanoCapture(b *board.Board, m board.Move) bool {
	mover := b.At(m.From)
	dest := b.At(m.To)
	if mover.Kind() != board.Bishop || dest.Kind() != board.Bishop || mover.Side() != dest.Side() {
		return false
	}
	mid := board.Square{Row: (m.From.Row + m.To.Row) / 2, Col: (m.From.Col + m.To.Col) / 2}
	victim := b.At(mid)
	return victim != board.NoPiece && victim.Side() != mover.Side()
}

// victim returns the piece captured by m against b, or board.NoPiece if m is quiet.
func victim(b *board.Board, m board.Move) board.Piece {
	if p := b.At(m.To); p != board.NoPiece {
		return p
	}
	if isElVaticanoCapture(b, m) {
		mid := board.Square{Row: (m.From.Row + m.To.Row) / 2, Col: (m.From.Col + m.To.Col) / 2}
		return b.At(mid)
	}
	return board.NoPiece
}

// mvvlva scores a capture by most-valuable-victim, least-valuable-attacker: favor
// capturing the most valuable piece with the least valuable one, so the search tries
// its best trades first.
func mvvlva(b *board.Board, m board.Move) int {
	v := victim(b, m)
	if v == board.NoPiece {
		return 0
	}
	attacker := b.At(m.From)
	return 100*eval.NominalValue(v) - eval.NominalValue(attacker)
}
