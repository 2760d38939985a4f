// Package fen contains utilities for reading and writing Liberty Chess positions in
// L-FEN notation: a superset of standard FEN that allows boards up to 65536x65536 and
// the full 18-piece alphabet, and adds queen/king castling columns so castling is
// well-defined on non-standard board widths.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/herohde/liberty/pkg/board"
)

// Initial is the classical starting position on an 8x8 board.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses an L-FEN string into a Board. Row 0 of the resulting board is the
// rank nearest White (as in standard FEN, the board text runs from Black's back rank
// down to White's).
//
// Only the board layout (field 0) is mandatory; active color, castling rights, en
// passant, halfmove clock and fullmove number (fields 1-5) each default as in standard
// FEN if trailing fields are omitted, mirroring the reference parser's trailing-
// default rule. The optional seventh field is a comma-separated list of variant
// parameters: pawn moves, pawn row and castle row (both 1-based), then the queen-side
// and king-side rook columns. Values it omits, or a "-" in its place, keep the
// defaults (2, 2, 1, the first column and the last column). Fields after the seventh
// (promotion options, friendly-fire) are accepted and ignored. A decoded position in
// which the side to move has no legal move gets State Checkmate or Stalemate.
func Decode(s string) (*board.Board, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty L-FEN: %q", s)
	}
	defaults := []string{"", "w", "-", "-", "0", "1"} // index 0 (board) is never defaulted
	for len(fields) < len(defaults) {
		fields = append(fields, defaults[len(fields)])
	}

	rows := strings.Split(fields[0], "/")
	height := len(rows)

	grid := make([][]board.Piece, height)
	var whiteKings, blackKings []board.Square
	whitePieces, blackPieces := 0, 0
	width := -1

	for i, text := range rows {
		row := height - 1 - i // text runs top (Black's back rank) to bottom
		var squares []board.Piece
		pending := 0
		for _, c := range text {
			if c >= '0' && c <= '9' {
				pending = pending*10 + int(c-'0')
				continue
			}
			if pending > 0 {
				squares = append(squares, make([]board.Piece, pending)...)
				pending = 0
			}
			p, err := board.ParsePieceChar(c)
			if err != nil {
				return nil, err
			}
			if p.Kind() == board.King {
				sq := board.Square{Row: row, Col: len(squares)}
				if p.Side() == board.White {
					whiteKings = append(whiteKings, sq)
				} else {
					blackKings = append(blackKings, sq)
				}
			} else if p != board.NoPiece {
				if p.Side() == board.White {
					whitePieces++
				} else {
					blackPieces++
				}
			}
			squares = append(squares, p)
		}
		if pending > 0 {
			squares = append(squares, make([]board.Piece, pending)...)
		}
		if width == -1 {
			width = len(squares)
		} else if len(squares) != width {
			return nil, fmt.Errorf("non-rectangular board found in L-FEN: %q", s)
		}
		grid[row] = squares
	}

	if width < 2 || height < 2 || width > 65536 || height > 65536 {
		return nil, fmt.Errorf("board must be between 2x2 and 65536x65536: %q", s)
	}

	shared := board.DefaultSharedData(width)
	shared.Zobrist = board.NewZobristKeys(height, width, board.DefaultZobristSeed)
	if len(fields) > 6 && fields[6] != "-" {
		params := []*int{&shared.PawnMoves, &shared.PawnRow, &shared.CastleRow, &shared.QueenColumn, &shared.KingColumn}
		for i, text := range strings.Split(fields[6], ",") {
			n, err := strconv.Atoi(text)
			if err != nil || i >= len(params) {
				return nil, fmt.Errorf("invalid variant parameters in L-FEN: %q", s)
			}
			if i == 1 || i == 2 {
				n-- // pawn row and castle row are written 1-based
			}
			*params[i] = n
		}
	}

	b := board.NewBoard(height, width, shared)
	for r, row := range grid {
		for c, p := range row {
			b.SetPiece(board.Square{Row: r, Col: c}, p)
		}
	}
	b.WhiteKings, b.BlackKings = whiteKings, blackKings
	b.WhitePieces, b.BlackPieces = whitePieces, blackPieces

	active, err := parseColor(fields[1])
	if err != nil {
		return nil, err
	}
	b.ToMove = active

	castling, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	b.Castling = castling

	if fields[3] != "-" {
		col, rowMin, rowMax, err := parseEnPassant(fields[3])
		if err != nil {
			return nil, err
		}
		b.EnPassant = &board.EnPassant{Col: col, RowMin: rowMin, RowMax: rowMax}
	}

	halfmoves, err := strconv.Atoi(fields[4])
	if err != nil || halfmoves < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in L-FEN: %q", s)
	}
	b.Halfmoves = halfmoves

	fullmoves, err := strconv.Atoi(fields[5])
	if err != nil || fullmoves < 1 {
		return nil, fmt.Errorf("invalid fullmove number in L-FEN: %q", s)
	}
	b.Moves = fullmoves

	b.Hash = shared.Zobrist.HashBoard(b)
	b.Duplicates[b.Hash] = 1

	if len(b.GenerateLegal()) == 0 {
		if b.InCheck(b.ToMove) {
			b.State = board.Checkmate
			b.Loser = b.ToMove
		} else {
			b.State = board.Stalemate
		}
	}

	return b, nil
}

// Encode renders b as an L-FEN string.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for i := 0; i < b.Height; i++ {
		row := b.Height - 1 - i
		blanks := 0
		for col := 0; col < b.Width; col++ {
			p := b.At(board.Square{Row: row, Col: col})
			if p == board.NoPiece {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(p.Char())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < b.Height-1 {
			sb.WriteString("/")
		}
	}

	turn := "b"
	if b.ToMove == board.White {
		turn = "w"
	}

	ep := "-"
	if b.EnPassant != nil {
		ep = printEnPassant(*b.EnPassant)
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), turn, b.Castling.String(), ep, b.Halfmoves, b.Moves)
}

func parseColor(s string) (board.Color, error) {
	switch s {
	case "w", "W":
		return board.White, nil
	case "b", "B":
		return board.Black, nil
	default:
		return 0, fmt.Errorf("invalid active color in L-FEN: %q", s)
	}
}

func parseCastling(s string) (board.Castling, error) {
	var c board.Castling
	if s == "-" {
		return c, nil
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, fmt.Errorf("invalid castling rights in L-FEN: %q", s)
		}
	}
	return c, nil
}

// parseEnPassant parses "<file><row>" (single square, as in standard FEN) or
// "<file><rowMin>-<rowMax>" (a range of squares left capturable by a multi-square
// pawn advance).
func parseEnPassant(s string) (col, rowMin, rowMax int, err error) {
	sq, err := board.ParseSquare(s)
	if err == nil {
		return sq.Col, sq.Row, sq.Row, nil
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("invalid en passant field in L-FEN: %q", s)
	}
	lo, err := board.ParseSquare(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	hiRow, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid en passant field in L-FEN: %q", s)
	}
	return lo.Col, lo.Row, hiRow - 1, nil
}

func printEnPassant(e board.EnPassant) string {
	col := columnLetters(e.Col)
	if e.RowMin == e.RowMax {
		return fmt.Sprintf("%s%d", col, e.RowMin+1)
	}
	return fmt.Sprintf("%s%d-%d", col, e.RowMin+1, e.RowMax+1)
}

func columnLetters(col int) string {
	sq := board.Square{Row: 0, Col: col}
	s := sq.String()
	return s[:len(s)-1]
}
