package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/eval"
	"github.com/seekerror/logw"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable speeds up search by caching the result of previously searched
// positions, keyed by Zobrist hash. Must be thread-safe: searchctl may probe it from a
// goroutine that is concurrently being halted.
type TranspositionTable interface {
	// Read returns the bound, depth, score and best move for the given position hash, if
	// present. moves is the probing node's fullmove count: since the table persists
	// across an entire game, not just a single search, a hit may have been written at a
	// different fullmove count than it is read at, and any Win/Loss score -- which
	// carries the absolute fullmove count mate occurs at, not a depth-relative distance
	// -- must be rebased onto moves before use.
	Read(hash board.ZobristHash, moves int) (Bound, int, eval.Score, board.Move, bool)
	// Write stores the entry into the table, depending on table semantics and replacement policy.
	Write(hash board.ZobristHash, bound Bound, moves, depth int, score eval.Score, move board.Move) bool

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// metadata captures node metadata: precision (bound), best move, the fullmove number
// at which the entry was written, and depth.
type metadata struct {
	bound      Bound
	from, to   board.Square
	promotion  board.Piece
	moves      uint16
	depth      uint16
}

// node represents a single search result cached in the table.
type node struct {
	hash  board.ZobristHash
	score eval.Score
	md    metadata
}

// table is a fixed-size, lock-free transposition table: entries are replaced via a
// single atomic pointer swap rather than a mutex, so concurrent Read/Write never
// blocks. Collisions are resolved by always-replace: a Write never inspects what
// currently occupies the slot before overwriting it.
type table struct {
	table []*node
	mask  uint64
	used  uint64
}

// NewTranspositionTable allocates a table sized to the largest power of two number of
// entries fitting within size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1)
	if size > 64 {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/64))
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &table{
		table: make([]*node, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.table)) * 64
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.table))
}

func (t *table) Read(hash board.ZobristHash, moves int) (Bound, int, eval.Score, board.Move, bool) {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	ptr := (*node)(atomic.LoadPointer(addr))
	if ptr != nil && hash == ptr.hash {
		bestmove := board.Move{From: ptr.md.from, To: ptr.md.to, Promotion: ptr.md.promotion}
		score := rebaseMateScore(ptr.score, int(ptr.md.moves), moves)
		return ptr.md.bound, int(ptr.md.depth), score, bestmove, true
	}
	return ExactBound, 0, eval.Score{}, board.Move{}, false
}

// rebaseMateScore adjusts a Win/Loss score stored at fullmove count `stored` so it
// reads correctly as of fullmove count `now`: Win/Loss carry the absolute fullmove
// count mate occurs at, so reusing an entry written at a different point in the game
// requires shifting that count by how far the game has moved on since.
func rebaseMateScore(s eval.Score, stored, now int) eval.Score {
	delta := now - stored
	if delta == 0 {
		return s
	}
	switch s.Kind {
	case eval.Win:
		v := s.Value + delta
		if v < 0 {
			v = 0
		}
		return eval.WinIn(v)
	case eval.Loss:
		v := s.Value + delta
		if v < 0 {
			v = 0
		}
		return eval.LossIn(v)
	default:
		return s
	}
}

func (t *table) Write(hash board.ZobristHash, bound Bound, moves, depth int, score eval.Score, move board.Move) bool {
	key := uint64(hash) & t.mask
	addr := (*unsafe.Pointer)(unsafe.Pointer(&t.table[key]))

	fresh := &node{
		hash:  hash,
		score: score,
		md: metadata{
			bound:     bound,
			from:      move.From,
			to:        move.To,
			promotion: move.Promotion,
			moves:     uint16(moves),
			depth:     uint16(depth),
		},
	}

	// Replace-always: every Write unconditionally overwrites whatever previously
	// occupied the slot, win or lose on the replacement, matching the reference
	// table's store.
	ptr := (*node)(atomic.LoadPointer(addr))
	for {
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(ptr), unsafe.Pointer(fresh)) {
			if ptr == nil {
				t.used++
			}
			return true
		}
		ptr = (*node)(atomic.LoadPointer(addr))
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation, used to disable the table entirely
// (e.g. for perft or reproducible minimax comparisons).
type NoTranspositionTable struct{}

func (n NoTranspositionTable) Read(board.ZobristHash, int) (Bound, int, eval.Score, board.Move, bool) {
	return ExactBound, 0, eval.Score{}, board.Move{}, false
}

func (n NoTranspositionTable) Write(board.ZobristHash, Bound, int, int, eval.Score, board.Move) bool {
	return false
}

func (n NoTranspositionTable) Size() uint64 {
	return 0
}

func (n NoTranspositionTable) Used() float64 {
	return 0
}
