package board

import "fmt"

// ParseError reports why an L-FEN or move string could not be parsed. Parsing never
// panics: every malformed-input path returns one of these instead.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func errInvalidPiece(c rune) error {
	return &ParseError{Reason: fmt.Sprintf("invalid piece found: %c", c)}
}

func errNonRectangular() error {
	return &ParseError{Reason: "non-rectangular board found"}
}

func errSize() error {
	return &ParseError{Reason: "board must be between 2x2 and 65536x65536"}
}
