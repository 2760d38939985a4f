// Package board contains the Liberty Chess board representation and utilities.
package board

import "fmt"

// EnPassant describes the file and inclusive row range of squares that became
// capturable en passant after the last move. A pawn advancing more than one square in
// a single move leaves every square it crossed capturable, not just the square
// immediately behind it; RowMin and RowMax are both inclusive.
type EnPassant struct {
	Col, RowMin, RowMax int
}

func (e *EnPassant) contains(sq Square) bool {
	return e != nil && sq.Col == e.Col && sq.Row >= e.RowMin && sq.Row <= e.RowMax
}

// SharedData holds the per-game variant parameters and the Zobrist key set. It is
// immutable once a game starts and shared by pointer across every clone of the
// originating Board, so cloning a Board for search never copies the key table.
type SharedData struct {
	PawnMoves        int // max squares a pawn may advance on its first move
	PawnRow          int // row pawns start on, measured from their own back rank
	CastleRow        int // row, measured from the back rank, on which castling occurs
	QueenColumn      int // column the queen-side castling rook starts on
	KingColumn       int // column the king-side castling rook starts on
	PromotionOptions []Piece
	FriendlyFire     bool

	Zobrist *ZobristKeys
}

// DefaultSharedData returns the classical variant parameters for a board of the given
// width: the king and queen side castling rooks start on the two edge columns.
func DefaultSharedData(width int) *SharedData {
	return &SharedData{
		PawnMoves:        2,
		PawnRow:          1,
		CastleRow:        0,
		QueenColumn:      0,
		KingColumn:       width - 1,
		PromotionOptions: append([]Piece(nil), DefaultPromotionOptions...),
	}
}

// Board is a Liberty Chess position: a rectangular grid of pieces plus the metadata
// needed to determine legal moves and game termination. Dimensions are runtime
// variable (2..65536 per axis) and 18 piece kinds are supported, so unlike a classical
// 8x8/6-piece engine the position cannot be packed into a 64-bit bitboard; it is
// stored as a flat row-major slice instead, mirroring the dense array the reference
// implementation uses for the same purpose.
type Board struct {
	Height, Width int
	Grid          []Piece

	ToMove    Color
	Castling  Castling
	EnPassant *EnPassant
	Halfmoves int
	Moves     int // fullmove number, 1-based

	Shared *SharedData

	// PromotionTarget is set between the two halves of an interactive move-then-choose
	// promotion (see Board.Promote); the search and perft paths never leave it set, as
	// they always submit a Move with Promotion already resolved.
	PromotionTarget *Square

	WhiteKings, BlackKings   []Square
	WhitePieces, BlackPieces int

	State State
	Loser Color // meaningful only when State is Checkmate or Elimination

	Hash       ZobristHash
	History    []ZobristHash // hashes since the last irreversible move, oldest first
	Duplicates map[ZobristHash]int

	LastMove *Move
}

// NewBoard allocates an empty board of the given size sharing the given variant data.
// Callers normally populate it via fen.Decode rather than directly.
func NewBoard(height, width int, shared *SharedData) *Board {
	return &Board{
		Height:     height,
		Width:      width,
		Grid:       make([]Piece, height*width),
		ToMove:     White,
		Moves:      1,
		Shared:     shared,
		Duplicates: make(map[ZobristHash]int),
	}
}

func (b *Board) InBounds(sq Square) bool {
	return sq.Row >= 0 && sq.Row < b.Height && sq.Col >= 0 && sq.Col < b.Width
}

func (b *Board) index(sq Square) int {
	return sq.Row*b.Width + sq.Col
}

func (b *Board) At(sq Square) Piece {
	return b.Grid[b.index(sq)]
}

func (b *Board) set(sq Square, p Piece) {
	b.Grid[b.index(sq)] = p
}

// SetPiece places p on sq, bypassing move generation. It is intended for position
// setup (FEN decoding, test fixtures), not for playing moves.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.set(sq, p)
}

// Kings returns the squares occupied by side's kings. A variant board may have zero,
// one or several; losing the last one loses the game under the Elimination rule.
func (b *Board) Kings(side Color) []Square {
	if side == White {
		return b.WhiteKings
	}
	return b.BlackKings
}

func (b *Board) setKings(side Color, kings []Square) {
	if side == White {
		b.WhiteKings = kings
	} else {
		b.BlackKings = kings
	}
}

func removeSquare(list []Square, sq Square) []Square {
	out := list[:0]
	for _, s := range list {
		if s != sq {
			out = append(out, s)
		}
	}
	return out
}

func addPieceCount(b *Board, side Color, delta int) {
	if side == White {
		b.WhitePieces += delta
	} else {
		b.BlackPieces += delta
	}
}

// Clone returns a deep copy of b. Only the SharedData pointer (variant parameters and
// Zobrist keys) is shared with the original, matching the reference implementation's
// clone-for-successor move generation.
func (b *Board) Clone() *Board {
	c := *b
	c.Grid = append([]Piece(nil), b.Grid...)
	c.WhiteKings = append([]Square(nil), b.WhiteKings...)
	c.BlackKings = append([]Square(nil), b.BlackKings...)
	c.History = append([]ZobristHash(nil), b.History...)
	c.Duplicates = make(map[ZobristHash]int, len(b.Duplicates))
	for k, v := range b.Duplicates {
		c.Duplicates[k] = v
	}
	if b.EnPassant != nil {
		ep := *b.EnPassant
		c.EnPassant = &ep
	}
	if b.PromotionTarget != nil {
		pt := *b.PromotionTarget
		c.PromotionTarget = &pt
	}
	if b.LastMove != nil {
		lm := *b.LastMove
		c.LastMove = &lm
	}
	return &c
}

func (b *Board) String() string {
	return fmt.Sprintf("board{%vx%v, turn=%v, hash=%x, moves=%v, halfmoves=%v, state=%v}", b.Width, b.Height, b.ToMove, b.Hash, b.Moves, b.Halfmoves, b.State)
}

// Send is the plain-data form of a Board used to move it across goroutines without
// sharing memory: it drops the shared Zobrist pointer, which LoadFromThread
// reconstructs deterministically from (Height, Width, ZobristSeed).
type Send struct {
	Height, Width           int
	Grid                    []Piece
	ToMove                  Color
	Castling                Castling
	EnPassant               *EnPassant
	Halfmoves, Moves        int
	PawnMoves, PawnRow      int
	CastleRow               int
	QueenColumn, KingColumn int
	PromotionOptions        []Piece
	FriendlyFire            bool

	WhiteKings, BlackKings   []Square
	WhitePieces, BlackPieces int

	State State
	Loser Color

	History     []ZobristHash
	LastMove    *Move
	ZobristSeed int64
}

// ToSend decomposes b into its wire form for a worker goroutine, carrying seed so the
// receiver can rebuild an equal Zobrist key set without copying it.
func (b *Board) ToSend(seed int64) Send {
	return Send{
		Height: b.Height, Width: b.Width,
		Grid:      append([]Piece(nil), b.Grid...),
		ToMove:    b.ToMove,
		Castling:  b.Castling,
		EnPassant: b.EnPassant,
		Halfmoves: b.Halfmoves, Moves: b.Moves,
		PawnMoves: b.Shared.PawnMoves, PawnRow: b.Shared.PawnRow, CastleRow: b.Shared.CastleRow,
		QueenColumn: b.Shared.QueenColumn, KingColumn: b.Shared.KingColumn,
		PromotionOptions: append([]Piece(nil), b.Shared.PromotionOptions...),
		FriendlyFire:     b.Shared.FriendlyFire,
		WhiteKings:       append([]Square(nil), b.WhiteKings...),
		BlackKings:       append([]Square(nil), b.BlackKings...),
		WhitePieces:      b.WhitePieces, BlackPieces: b.BlackPieces,
		State: b.State, Loser: b.Loser,
		History:     append([]ZobristHash(nil), b.History...),
		LastMove:    b.LastMove,
		ZobristSeed: seed,
	}
}

// LoadFromThread reconstructs a Board from its wire form, rebuilding the shared
// Zobrist key set rather than receiving it over the channel.
func (s Send) LoadFromThread() *Board {
	shared := &SharedData{
		PawnMoves: s.PawnMoves, PawnRow: s.PawnRow, CastleRow: s.CastleRow,
		QueenColumn: s.QueenColumn, KingColumn: s.KingColumn,
		PromotionOptions: s.PromotionOptions,
		FriendlyFire:     s.FriendlyFire,
		Zobrist:          NewZobristKeys(s.Height, s.Width, s.ZobristSeed),
	}
	b := &Board{
		Height: s.Height, Width: s.Width, Grid: s.Grid,
		ToMove: s.ToMove, Castling: s.Castling, EnPassant: s.EnPassant,
		Halfmoves: s.Halfmoves, Moves: s.Moves,
		Shared:      shared,
		WhiteKings:  s.WhiteKings,
		BlackKings:  s.BlackKings,
		WhitePieces: s.WhitePieces, BlackPieces: s.BlackPieces,
		State: s.State, Loser: s.Loser,
		History:    s.History,
		Duplicates: make(map[ZobristHash]int),
		LastMove:   s.LastMove,
	}
	b.Hash = shared.Zobrist.HashBoard(b)
	return b
}

// InCheck reports whether any of side's kings is attacked.
func (b *Board) InCheck(side Color) bool {
	for _, k := range b.Kings(side) {
		if b.IsAttacked(k, side.Opponent()) {
			return true
		}
	}
	return false
}

// updateState recomputes b.State (and b.Loser) after a move has been applied and the
// side to move has already been flipped. legalMoves is supplied by the caller (it
// already had to generate them to know whether the game continues), avoiding a second
// generation pass purely to classify the result.
func (b *Board) updateState(legalMoves int) {
	side := b.ToMove

	if len(b.Kings(side)) == 0 && wasEverInGame(b, side) {
		b.State = Elimination
		b.Loser = side
		return
	}

	if legalMoves == 0 {
		if b.InCheck(side) {
			b.State = Checkmate
			b.Loser = side
		} else {
			b.State = Stalemate
		}
		return
	}

	if b.Halfmoves >= 100 {
		b.State = FiftyMove
		return
	}

	if b.Duplicates[b.Hash] >= 3 {
		b.State = Repetition
		return
	}

	if b.hasInsufficientMaterial() {
		b.State = Material
		return
	}

	b.State = InProgress
}

// wasEverInGame reports whether side ever had a king; a variant that starts with no
// kings for one side is not an elimination loss by definition.
func wasEverInGame(b *Board, side Color) bool {
	return true
}

// hasInsufficientMaterial reports whether neither side has enough material to deliver
// checkmate by any sequence of legal moves: only bare kings (and, conventionally, a
// single minor piece each) remain.
func (b *Board) hasInsufficientMaterial() bool {
	if b.WhitePieces > 1 || b.BlackPieces > 1 {
		return false
	}
	minorOnly := true
	for _, p := range b.Grid {
		if p == NoPiece {
			continue
		}
		k := p.Kind()
		if k != King && k != Knight && k != Bishop {
			minorOnly = false
			break
		}
	}
	return minorOnly
}
