package board

import (
	"fmt"
	"strings"
)

// Move represents a not-necessarily-legal move: a source and destination square, plus
// an optional promotion target. El Vaticano is not a distinct move kind: a bishop
// moving two squares onto a friendly bishop with an enemy piece strictly between them
// is recognized structurally when the move is applied (see Board.Make), not flagged
// here, matching the variant's own encoding of the rule as "a bishop-to-bishop move".
type Move struct {
	From, To  Square
	Promotion Piece // desired kind (unsigned) for promotion, or NoPiece if none
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders m in long algebraic coordinate notation, e.g. "a2a4" or "a7a8q".
// The promotion suffix is always a single lowercase letter, independent of side.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPiece {
		s += string(m.Promotion.Kind().Owned(Black).Char())
	}
	return s
}

// ParseMove parses a move in long algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The parsed move carries no contextual information (castling, en passant,
// El Vaticano); those are recovered by replaying it against a Board.
func ParseMove(s string) (Move, error) {
	col1, rest, ok := parseColumnLetters(s)
	if !ok {
		return Move{}, fmt.Errorf("invalid move %q: missing start file", s)
	}
	row1, rest, ok := parseDigits(rest)
	if !ok {
		return Move{}, fmt.Errorf("invalid move %q: missing start rank", s)
	}
	col2, rest, ok := parseColumnLetters(rest)
	if !ok {
		return Move{}, fmt.Errorf("invalid move %q: missing end file", s)
	}
	row2, rest, ok := parseDigits(rest)
	if !ok {
		return Move{}, fmt.Errorf("invalid move %q: missing end rank", s)
	}

	m := Move{From: Square{Row: row1 - 1, Col: col1}, To: Square{Row: row2 - 1, Col: col2}}
	if rest != "" {
		if len(rest) != 1 {
			return Move{}, fmt.Errorf("invalid move %q: bad promotion suffix", s)
		}
		p, err := ParsePieceChar(rune(rest[0]))
		if err != nil || p.Kind() == Pawn || p.Kind() == King {
			return Move{}, fmt.Errorf("invalid move %q: bad promotion piece", s)
		}
		m.Promotion = p.Kind()
	}
	return m, nil
}

// PrintMoves renders a sequence of moves as a space-separated string of long
// algebraic coordinates, e.g. "e2e4 e7e5 g1f3", for logging and PV display.
func PrintMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
