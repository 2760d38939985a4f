package search

import (
	"container/heap"

	"github.com/herohde/liberty/pkg/board"
)

// Priority ranks a move for ordering: higher is tried first. The absolute value
// carries no meaning outside the heap; only the ordering across moves in the same
// position matters.
type Priority int64

// Ordering bands, from most to least promising. A capture/quiet is placed into
// exactly one band and then broken down by MVV-LVA or history within it, so a "bad"
// capture (negative MVV-LVA score, which with NominalValue's table happens only for a
// victim of nominal value 0) still sorts after every killer and quiet move.
const (
	bandTT      Priority = 1 << 30
	bandGoodCap Priority = 1 << 28
	bandKiller  Priority = 1 << 27
	bandQuiet   Priority = 1 << 20
	bandBadCap  Priority = 0
)

// NewMovePicker builds a move-ordering priority queue over moves, the legal moves of
// b's position to move. ttMove, if non-zero, is tried first; killers and hist refine
// the ordering of non-capturing moves.
func NewMovePicker(b *board.Board, moves []board.Move, ttMove board.Move, killers *Killers, ply int, hist *History) *MovePicker {
	side := b.ToMove
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: priority(b, m, ttMove, killers, ply, hist, side)}
	}
	heap.Init(&h)
	return &MovePicker{h: h}
}

func priority(b *board.Board, m, ttMove board.Move, killers *Killers, ply int, hist *History, side board.Color) Priority {
	if !ttMove.Equals(board.Move{}) && m.Equals(ttMove) {
		return bandTT
	}
	if IsCapture(b, m) {
		gain := mvvlva(b, m)
		if gain >= 0 {
			return bandGoodCap + Priority(gain)
		}
		return bandBadCap + Priority(gain)
	}
	if killers != nil && killers.Are(ply, m) {
		return bandKiller
	}
	if hist != nil {
		return bandQuiet + Priority(hist.Get(side, b.At(m.From), m.To))
	}
	return bandQuiet
}

// MovePicker hands out moves from a position in priority order, highest first.
type MovePicker struct {
	h moveHeap
}

// Next returns the next move in priority order, or false once exhausted.
func (mp *MovePicker) Next() (board.Move, bool) {
	if len(mp.h) == 0 {
		return board.Move{}, false
	}
	e := heap.Pop(&mp.h).(elm)
	return e.m, true
}

func (mp *MovePicker) Len() int {
	return len(mp.h)
}

type elm struct {
	m   board.Move
	val Priority
}

// moveHeap is a max-heap on val, implementing container/heap with a fixed element set
// (Push panics: NewMovePicker builds the full heap up front via heap.Init).
type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { panic("fixed size heap") }

func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
