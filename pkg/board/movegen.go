package board

// This file generates and applies moves for all 18 piece kinds. Movement tables are
// expressed as either sliding directions (repeated until blocked) or fixed leaper
// offsets (single jump, never blocked), following the dispatch-by-kind scan the
// reference engine's own move generator performs.

var orthogonal = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagonal = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var knightJumps = [][2]int{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
var camelJumps = [][2]int{{1, 3}, {3, 1}, {-1, 3}, {-3, 1}, {1, -3}, {3, -1}, {-1, -3}, {-3, -1}}
var zebraJumps = [][2]int{{2, 3}, {3, 2}, {-2, 3}, {-3, 2}, {2, -3}, {3, -2}, {-2, -3}, {-3, -2}}
var kingStep = append(append([][2]int{}, orthogonal...), diagonal...)

// slide walks each direction until the board edge, an own piece, or a capturable
// enemy piece is reached.
func (b *Board) slide(sq Square, side Color, dirs [][2]int, add func(Square)) {
	for _, d := range dirs {
		cur := sq
		for {
			cur = cur.Add(d[0], d[1])
			if !b.InBounds(cur) {
				break
			}
			target := b.At(cur)
			if target == NoPiece {
				add(cur)
				continue
			}
			if target.Side() != side && b.At(sq).CanCapture(target) {
				add(cur)
			}
			break
		}
	}
}

// leap tries each fixed offset exactly once; leapers are never blocked in transit.
func (b *Board) leap(sq Square, side Color, offsets [][2]int, add func(Square)) {
	for _, d := range offsets {
		cur := sq.Add(d[0], d[1])
		if !b.InBounds(cur) {
			continue
		}
		target := b.At(cur)
		if target == NoPiece || (target.Side() != side && b.At(sq).CanCapture(target)) {
			add(cur)
		}
	}
}

// pawnDirection returns the forward row step for side.
func pawnDirection(side Color) int {
	if side == White {
		return 1
	}
	return -1
}

func (b *Board) pawnHomeRow(side Color) int {
	if side == White {
		return b.Shared.PawnRow
	}
	return b.Height - 1 - b.Shared.PawnRow
}

func (b *Board) backRow(side Color) int {
	if side == White {
		return 0
	}
	return b.Height - 1
}

// pseudoLegalFrom appends every pseudolegal destination for the piece on sq (which
// must be non-empty) to moves, expanding promotions into one Move per option.
// skipCastling omits king castling moves, used by attack-detection to avoid mutual
// recursion between the two sides' castling legality checks.
func (b *Board) pseudoLegalFrom(sq Square, moves []Move, skipCastling bool) []Move {
	p := b.At(sq)
	side := p.Side()
	kind := p.Kind()

	addTo := func(dest []Square) {
		for _, to := range dest {
			moves = appendWithPromotion(moves, b, sq, to, side)
		}
	}
	var collected []Square
	collect := func(sq Square) { collected = append(collected, sq) }

	switch kind {
	case Pawn:
		moves = b.pawnMoves(sq, side, moves)
		return moves
	case Knight:
		collected = nil
		b.leap(sq, side, knightJumps, collect)
	case Bishop:
		collected = nil
		b.slide(sq, side, diagonal, collect)
		moves = append(moves, b.elVaticanoMoves(sq, side)...)
	case Rook:
		collected = nil
		b.slide(sq, side, orthogonal, collect)
	case Queen:
		collected = nil
		b.slide(sq, side, orthogonal, collect)
		b.slide(sq, side, diagonal, collect)
	case King:
		collected = nil
		b.leap(sq, side, kingStep, collect)
		addTo(collected)
		if !skipCastling {
			moves = b.castlingMoves(sq, side, moves)
		}
		return moves
	case Archbishop:
		collected = nil
		b.slide(sq, side, diagonal, collect)
		b.leap(sq, side, knightJumps, collect)
	case Chancellor:
		collected = nil
		b.slide(sq, side, orthogonal, collect)
		b.leap(sq, side, knightJumps, collect)
	case Camel:
		collected = nil
		b.leap(sq, side, camelJumps, collect)
	case Zebra:
		collected = nil
		b.leap(sq, side, zebraJumps, collect)
	case Mann:
		collected = nil
		b.leap(sq, side, kingStep, collect)
	case Nightrider:
		collected = nil
		b.nightriderMoves(sq, side, collect)
	case Champion:
		collected = nil
		b.championMoves(sq, side, collect)
	case Centaur:
		collected = nil
		b.leap(sq, side, kingStep, collect)
		b.leap(sq, side, knightJumps, collect)
	case Amazon:
		collected = nil
		b.slide(sq, side, orthogonal, collect)
		b.slide(sq, side, diagonal, collect)
		b.leap(sq, side, knightJumps, collect)
	case Elephant:
		// A short-range leaper: one square in any direction, same reach as Mann/King
		// but never blocked in transit (it has none, being a single step).
		collected = nil
		b.leap(sq, side, kingStep, collect)
	case Obstacle, Wall:
		// Teleporting pieces: every empty square on the board is reachable in one
		// move, blocked by nothing in transit since there is no transit. Attack level
		// None (see attackLevel/CanCapture) means they can never capture, so only
		// empty destinations are collected.
		collected = nil
		for row := 0; row < b.Height; row++ {
			for col := 0; col < b.Width; col++ {
				to := Square{Row: row, Col: col}
				if to != sq && b.At(to) == NoPiece {
					collect(to)
				}
			}
		}
	}
	addTo(collected)
	return moves
}

// championMoves adds every square up to distance 2 along a rank, file or diagonal.
// The Champion is a leaper: unlike a queen capped at range 2, it is never blocked by
// an intervening piece on the nearer square.
func (b *Board) championMoves(sq Square, side Color, add func(Square)) {
	for _, d := range kingStep {
		for dist := 1; dist <= 2; dist++ {
			cur := sq.Add(d[0]*dist, d[1]*dist)
			if !b.InBounds(cur) {
				continue
			}
			target := b.At(cur)
			if target == NoPiece || (target.Side() != side && b.At(sq).CanCapture(target)) {
				add(cur)
			}
		}
	}
}

// nightriderMoves repeats the knight jump in the same direction until blocked.
func (b *Board) nightriderMoves(sq Square, side Color, add func(Square)) {
	for _, d := range knightJumps {
		cur := sq
		for {
			cur = cur.Add(d[0], d[1])
			if !b.InBounds(cur) {
				break
			}
			target := b.At(cur)
			if target == NoPiece {
				add(cur)
				continue
			}
			if target.Side() != side && b.At(sq).CanCapture(target) {
				add(cur)
			}
			break
		}
	}
}

// elVaticanoMoves returns the El Vaticano "moves" available to the bishop on sq: a
// friendly bishop exactly two squares away along a rank, file or diagonal with a
// capturable enemy piece strictly between them. Applying such a move leaves both
// bishops in place and removes the enemy piece (see Board.Make).
func (b *Board) elVaticanoMoves(sq Square, side Color) []Move {
	var moves []Move
	dirs := append(append([][2]int{}, orthogonal...), diagonal...)
	for _, d := range dirs {
		mid := sq.Add(d[0], d[1])
		dest := sq.Add(d[0]*2, d[1]*2)
		if !b.InBounds(mid) || !b.InBounds(dest) {
			continue
		}
		midPiece := b.At(mid)
		destPiece := b.At(dest)
		if midPiece == NoPiece || midPiece.Side() == side {
			continue
		}
		if destPiece.Kind() != Bishop || destPiece.Side() != side {
			continue
		}
		if !b.At(sq).CanCapture(midPiece) {
			continue
		}
		moves = append(moves, Move{From: sq, To: dest})
	}
	return moves
}

func appendWithPromotion(moves []Move, b *Board, from, to Square, side Color) []Move {
	p := b.At(from)
	if p.Kind() == Pawn && to.Row == b.promotionRow(side) {
		for _, opt := range b.Shared.PromotionOptions {
			moves = append(moves, Move{From: from, To: to, Promotion: opt})
		}
		return moves
	}
	return append(moves, Move{From: from, To: to})
}

func (b *Board) promotionRow(side Color) int {
	if side == White {
		return b.Height - 1
	}
	return 0
}

func (b *Board) pawnMoves(sq Square, side Color, moves []Move) []Move {
	dir := pawnDirection(side)

	one := sq.Add(dir, 0)
	if b.InBounds(one) && b.At(one) == NoPiece {
		moves = appendWithPromotion(moves, b, sq, one, side)
		if sq.Row == b.pawnHomeRow(side) {
			for step := 2; step <= b.Shared.PawnMoves; step++ {
				n := sq.Add(dir*step, 0)
				if !b.InBounds(n) || b.At(n) != NoPiece {
					break
				}
				moves = appendWithPromotion(moves, b, sq, n, side)
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		cap := sq.Add(dir, dc)
		if !b.InBounds(cap) {
			continue
		}
		target := b.At(cap)
		if target != NoPiece && target.Side() != side && b.At(sq).CanCapture(target) {
			moves = appendWithPromotion(moves, b, sq, cap, side)
		} else if target == NoPiece && b.EnPassant.contains(cap) {
			moves = append(moves, Move{From: sq, To: cap})
		}
	}
	return moves
}

func (b *Board) castlingMoves(sq Square, side Color, moves []Move) []Move {
	kingSide, queenSide := RightsFor(side)
	row := b.backRow(side) + signedRow(side, b.Shared.CastleRow)
	if sq.Row != row {
		return moves
	}

	tryCastle := func(right Castling, rookCol, kingDestCol, rookDestCol int) {
		if !b.Castling.IsAllowed(right) {
			return
		}
		rookSq := Square{Row: row, Col: rookCol}
		if b.At(rookSq).Kind() != Rook || b.At(rookSq).Side() != side {
			return
		}
		lo, hi := sq.Col, kingDestCol
		if lo > hi {
			lo, hi = hi, lo
		}
		for c := lo; c <= hi; c++ {
			if c == sq.Col {
				continue
			}
			if c != rookCol && b.At(Square{Row: row, Col: c}) != NoPiece {
				return
			}
		}
		if b.IsAttacked(sq, side.Opponent()) {
			return
		}
		step := 1
		if kingDestCol < sq.Col {
			step = -1
		}
		for c := sq.Col; c != kingDestCol; c += step {
			if b.IsAttacked(Square{Row: row, Col: c}, side.Opponent()) {
				return
			}
		}
		moves = append(moves, Move{From: sq, To: Square{Row: row, Col: kingDestCol}})
	}

	tryCastle(kingSide, b.Shared.KingColumn, sq.Col+2, 0)
	tryCastle(queenSide, b.Shared.QueenColumn, sq.Col-2, 0)
	return moves
}

func signedRow(side Color, row int) int {
	if side == White {
		return row
	}
	return -row
}

// Mobility returns the number of pseudolegal destinations for the piece on sq,
// counting each promotion option separately as the reference evaluator does.
func (b *Board) Mobility(sq Square) int {
	return len(b.pseudoLegalFrom(sq, nil, true))
}

// GeneratePseudoLegal returns every pseudolegal move for side, ignoring whether it
// leaves that side's own king(s) in check.
func (b *Board) GeneratePseudoLegal(side Color) []Move {
	var moves []Move
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			sq := Square{Row: row, Col: col}
			p := b.At(sq)
			if p != NoPiece && p.Side() == side {
				moves = b.pseudoLegalFrom(sq, moves, false)
			}
		}
	}
	return moves
}

// IsAttacked reports whether sq is attacked by any of bySide's pieces. Castling moves
// are excluded from the underlying scan: they never represent an attack on a square,
// and including them would make castling legality and attack detection recurse into
// each other across the two colours.
func (b *Board) IsAttacked(sq Square, bySide Color) bool {
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			from := Square{Row: row, Col: col}
			p := b.At(from)
			if p == NoPiece || p.Side() != bySide {
				continue
			}
			moves := b.pseudoLegalFrom(from, nil, true)
			for _, m := range moves {
				if m.To == sq {
					return true
				}
			}
		}
	}
	return false
}

// legality caches whether moves from a given origin square need the full
// make-move-and-recheck verification, or can be taken on faith as already legal. It is
// a 3-valued enum rather than a *bool: elideUnknown is a distinct state from either
// verdict, not a missing bool defaulted to false.
type legality int8

const (
	elideUnknown legality = iota // not yet computed for this origin square this scan
	mustCheck                    // origin square may be pinned or deliver discovered check: verify every move
	mayElide                     // origin square is safe: every pseudolegal move from it is legal outright
)

// alwaysChecks reports whether a piece kind can never use the legality-elision
// shortcut: King moves change which square the king occupies, so "was the origin
// attacked" says nothing about the destination; Pawn and Bishop moves can remove a
// piece other than the one captured on the destination square (en passant, the
// El Vaticano double capture), which can expose a discovered check the origin-square
// check alone would miss.
func alwaysChecks(kind Piece) bool {
	switch kind {
	case King, Bishop, Pawn:
		return true
	default:
		return false
	}
}

// GenerateLegal returns every legal move for side to move: pseudolegal moves that do
// not leave any of side's kings in check afterward (friendly-fire variants never
// leave a side's own king attacked by its own pieces, so this check is unaffected).
//
// Most origin squares need only one verification per scan, not one per candidate
// move: if the king is not currently in check and the origin square is not attacked,
// no move from it can expose a discovered check, so every pseudolegal move from that
// square is legal outright. This is computed lazily, once per origin square, and
// cached as state for the rest of that square's moves.
func (b *Board) GenerateLegal() []Move {
	side := b.ToMove
	kingSafe := !b.InCheck(side)

	var legal []Move
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			sq := Square{Row: row, Col: col}
			p := b.At(sq)
			if p == NoPiece || p.Side() != side {
				continue
			}

			state := elideUnknown
			if !kingSafe || alwaysChecks(p.Kind()) {
				state = mustCheck
			}

			for _, m := range b.pseudoLegalFrom(sq, nil, false) {
				if state == elideUnknown {
					if b.IsAttacked(sq, side.Opponent()) {
						state = mustCheck
					} else {
						state = mayElide
					}
				}

				if state == mayElide {
					legal = append(legal, m)
					continue
				}

				clone := b.Clone()
				clone.Make(m)
				if !clone.InCheck(side) {
					legal = append(legal, m)
				}
			}
		}
	}
	return legal
}

// GenerateLegalQuiescence returns the subset of legal moves a quiescence search
// should consider: captures, promotions, and any move that escapes check.
func (b *Board) GenerateLegalQuiescence() []Move {
	inCheck := b.InCheck(b.ToMove)
	all := b.GenerateLegal()
	if inCheck {
		return all
	}
	out := make([]Move, 0, len(all))
	for _, m := range all {
		if b.At(m.To) != NoPiece || m.Promotion != NoPiece || b.isElVaticano(m) {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) isElVaticano(m Move) bool {
	mover := b.At(m.From)
	dest := b.At(m.To)
	return mover.Kind() == Bishop && dest.Kind() == Bishop && dest.Side() == mover.Side()
}

// Make applies m to b in place. m must be pseudolegal (normally one produced by
// GeneratePseudoLegal or GenerateLegal against this exact position); behaviour is
// undefined otherwise. Make does not check whether the resulting position leaves the
// mover's king in check - GenerateLegal performs that filtering by cloning and
// calling Make once per candidate.
func (b *Board) Make(m Move) {
	zobrist := b.Shared.Zobrist
	mover := b.At(m.From)
	side := mover.Side()

	b.Hash ^= zobrist.pieceKey(m.From, mover)
	if b.Castling != 0 {
		for i := 0; i < 4; i++ {
			if b.Castling&(1<<uint(i)) != 0 {
				b.Hash ^= zobrist.castlingKey(i)
			}
		}
	}
	if b.EnPassant != nil {
		b.Hash ^= zobrist.enPassantKey(Square{Row: b.EnPassant.RowMin, Col: b.EnPassant.Col})
	}

	irreversible := false

	switch {
	case b.isElVaticano(m):
		mid := midpoint(m.From, m.To)
		victim := b.At(mid)
		b.Hash ^= zobrist.pieceKey(mid, victim)
		b.set(mid, NoPiece)
		addPieceCount(b, victim.Side(), -1)
		b.EnPassant = nil
		irreversible = true

	case mover.Kind() == King && abs(m.To.Col-m.From.Col) > 1 && abs(m.From.Row-m.To.Row) == 0 && b.castlingTarget(m):
		b.makeCastle(m, side)
		irreversible = true
		b.EnPassant = nil

	case mover.Kind() == Pawn && m.To.Col != m.From.Col && b.At(m.To) == NoPiece:
		// En passant capture: the captured pawn is wherever the last move left it.
		if b.LastMove != nil {
			victimSq := b.LastMove.To
			victim := b.At(victimSq)
			b.Hash ^= zobrist.pieceKey(victimSq, victim)
			b.set(victimSq, NoPiece)
			addPieceCount(b, victim.Side(), -1)
		}
		b.relocate(m, side)
		b.EnPassant = nil
		irreversible = true

	default:
		target := b.At(m.To)
		if target != NoPiece {
			b.Hash ^= zobrist.pieceKey(m.To, target)
			addPieceCount(b, target.Side(), -1)
			if target.Kind() == King {
				b.setKings(target.Side(), removeSquare(b.Kings(target.Side()), m.To))
			}
			irreversible = true
		}
		b.relocate(m, side)

		if mover.Kind() == Pawn {
			irreversible = true
			if abs(m.To.Row-m.From.Row) > 1 {
				lo, hi := m.From.Row, m.To.Row
				if lo > hi {
					lo, hi = hi, lo
				}
				b.EnPassant = &EnPassant{Col: m.From.Col, RowMin: lo + 1, RowMax: hi - 1}
			} else {
				b.EnPassant = nil
			}
		} else {
			b.EnPassant = nil
		}
	}

	b.updateCastlingRights(m, mover, side)

	if b.EnPassant != nil {
		b.Hash ^= zobrist.enPassantKey(Square{Row: b.EnPassant.RowMin, Col: b.EnPassant.Col})
	}
	for i := 0; i < 4; i++ {
		if b.Castling&(1<<uint(i)) != 0 {
			b.Hash ^= zobrist.castlingKey(i)
		}
	}

	if irreversible {
		b.Halfmoves = 0
		b.History = b.History[:0]
		b.Duplicates = make(map[ZobristHash]int)
	} else {
		b.Halfmoves++
		b.History = append(b.History, b.Hash)
	}

	b.Hash ^= zobrist.toMoveKey()
	b.ToMove = side.Opponent()
	if side == Black {
		b.Moves++
	}

	lm := m
	b.LastMove = &lm

	b.Duplicates[b.Hash]++
}

func (b *Board) castlingTarget(m Move) bool {
	kingSide, queenSide := RightsFor(b.At(m.From).Side())
	return b.Castling.IsAllowed(kingSide) || b.Castling.IsAllowed(queenSide)
}

func (b *Board) relocate(m Move, side Color) {
	zobrist := b.Shared.Zobrist
	mover := b.At(m.From)
	b.set(m.From, NoPiece)

	placed := mover
	if m.Promotion != NoPiece {
		placed = m.Promotion.Owned(side)
	}
	b.set(m.To, placed)
	b.Hash ^= zobrist.pieceKey(m.To, placed)

	if mover.Kind() == King {
		kings := b.Kings(side)
		for i, k := range kings {
			if k == m.From {
				kings[i] = m.To
				break
			}
		}
		b.setKings(side, kings)
	}
}

func (b *Board) makeCastle(m Move, side Color) {
	zobrist := b.Shared.Zobrist
	row := m.From.Row

	var rookFrom, rookTo, kingTo Square
	kingTo = m.To
	if m.To.Col > m.From.Col {
		rookFrom = Square{Row: row, Col: b.Shared.KingColumn}
		rookTo = Square{Row: row, Col: m.To.Col - 1}
	} else {
		rookFrom = Square{Row: row, Col: b.Shared.QueenColumn}
		rookTo = Square{Row: row, Col: m.To.Col + 1}
	}

	king := b.At(m.From)
	rook := b.At(rookFrom)

	b.set(m.From, NoPiece)
	b.set(rookFrom, NoPiece)
	b.Hash ^= zobrist.pieceKey(rookFrom, rook)

	b.set(kingTo, king)
	b.set(rookTo, rook)
	b.Hash ^= zobrist.pieceKey(kingTo, king)
	b.Hash ^= zobrist.pieceKey(rookTo, rook)

	kings := b.Kings(side)
	for i, k := range kings {
		if k == m.From {
			kings[i] = kingTo
			break
		}
	}
	b.setKings(side, kings)
}

func (b *Board) updateCastlingRights(m Move, mover Piece, side Color) {
	kingSide, queenSide := RightsFor(side)
	if mover.Kind() == King {
		b.Castling &^= kingSide | queenSide
	}
	if mover.Kind() == Rook && m.From.Row == b.backRow(side)+signedRow(side, b.Shared.CastleRow) {
		if m.From.Col == b.Shared.KingColumn {
			b.Castling &^= kingSide
		} else if m.From.Col == b.Shared.QueenColumn {
			b.Castling &^= queenSide
		}
	}
	oppKingSide, oppQueenSide := RightsFor(side.Opponent())
	if m.To.Row != b.backRow(side.Opponent())+signedRow(side.Opponent(), b.Shared.CastleRow) {
		return
	}
	if m.To.Col == b.Shared.KingColumn {
		b.Castling &^= oppKingSide
	} else if m.To.Col == b.Shared.QueenColumn {
		b.Castling &^= oppQueenSide
	}
}

func midpoint(a, b Square) Square {
	return Square{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PushMove applies m (which must be legal) and recomputes b.State. It is the primary
// entry point for driving a game forward one ply at a time, used by the engine's UCI
// and console front ends.
func (b *Board) PushMove(m Move) {
	b.Make(m)
	b.State = InProgress
	legal := b.GenerateLegal()
	b.updateState(len(legal))
}

// MakeNullMove returns a clone of b with the side to move flipped and any en passant
// right cleared, without otherwise changing the position. It is used by null-move
// pruning in search to test whether a position is strong enough that even giving the
// opponent a free move would not let them catch up; a null move is never part of a
// real game and never recorded in History.
func (b *Board) MakeNullMove() *Board {
	c := b.Clone()
	if c.EnPassant != nil {
		c.Hash ^= c.Shared.Zobrist.enPassantKey(Square{Row: c.EnPassant.RowMin, Col: c.EnPassant.Col})
		c.EnPassant = nil
	}
	c.Hash ^= c.Shared.Zobrist.toMoveKey()
	c.ToMove = c.ToMove.Opponent()
	c.LastMove = nil
	return c
}

// Promote resolves a pending two-step promotion choice left by an interactive front
// end that submitted a bare destination square before asking the user which piece to
// promote to. The search and perft paths never use this: they always submit a Move
// with Promotion already set.
func (b *Board) Promote(kind Piece) {
	if b.PromotionTarget == nil {
		return
	}
	side := b.At(*b.PromotionTarget).Side()
	b.set(*b.PromotionTarget, kind.Owned(side))
	b.PromotionTarget = nil
}
