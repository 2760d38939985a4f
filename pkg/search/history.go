package search

import (
	"github.com/herohde/liberty/pkg/board"
)

// History implements the history heuristic: quiet moves that have caused a beta
// cutoff in the past, for a given side and piece kind landing on a given square, are
// tried earlier in future searches. Scores are clamped to avoid overflow and decayed
// multiplicatively so stale information fades as the search moves to a new position.
type History struct {
	table map[historyKey]int
}

type historyKey struct {
	side  board.Color
	kind  board.Piece
	to    board.Square
}

const historyMax = 1 << 14

func NewHistory() *History {
	return &History{table: make(map[historyKey]int)}
}

func (h *History) key(side board.Color, p board.Piece, to board.Square) historyKey {
	return historyKey{side: side, kind: p.Kind(), to: to}
}

// Get returns the current history score for the move, or 0 if never recorded.
func (h *History) Get(side board.Color, p board.Piece, to board.Square) int {
	return h.table[h.key(side, p, to)]
}

// Bonus rewards a move that caused a beta cutoff, scaled by remaining depth.
func (h *History) Bonus(side board.Color, p board.Piece, to board.Square, depth int) {
	h.add(side, p, to, depth*depth)
}

// Malus penalizes a quiet move that was tried and failed to cause a cutoff before the
// move that did, so the history table discriminates rather than just accumulating.
func (h *History) Malus(side board.Color, p board.Piece, to board.Square, depth int) {
	h.add(side, p, to, -depth*depth)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (h *History) add(side board.Color, p board.Piece, to board.Square, delta int) {
	k := h.key(side, p, to)
	v := h.table[k] + delta - h.table[k]*abs(delta)/historyMax
	if v > historyMax {
		v = historyMax
	}
	if v < -historyMax {
		v = -historyMax
	}
	h.table[k] = v
}

// Killers tracks, per search ply, up to two quiet moves that caused a beta cutoff at
// that ply in a sibling branch. Tried after the transposition table move and the
// non-losing captures and ahead of ordinary history-ordered quiets, since a killer at
// ply N is likely to
// still be good in a different position reached at the same ply.
type Killers struct {
	slots [][2]board.Move
}

func NewKillers(maxPly int) *Killers {
	return &Killers{slots: make([][2]board.Move, maxPly+1)}
}

// Store records m as a killer at ply, evicting the older of the two slots.
func (k *Killers) Store(ply int, m board.Move) {
	if ply >= len(k.slots) {
		return
	}
	if k.slots[ply][0].Equals(m) {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

// Are reports whether m is a stored killer at ply.
func (k *Killers) Are(ply int, m board.Move) bool {
	if ply >= len(k.slots) {
		return false
	}
	return k.slots[ply][0].Equals(m) || k.slots[ply][1].Equals(m)
}
