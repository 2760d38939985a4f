package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/stretchr/testify/assert"
)

// soloBoard returns an otherwise empty height x width board with a single White piece
// of kind at sq, used to isolate one piece's movement geometry at a time.
func soloBoard(height, width int, kind board.Piece, sq board.Square) *board.Board {
	b := board.NewBoard(height, width, board.DefaultSharedData(width))
	b.SetPiece(sq, kind.Owned(board.White))
	return b
}

func destinations(moves []board.Move) []board.Square {
	var out []board.Square
	for _, m := range moves {
		out = append(out, m.To)
	}
	return out
}

func TestArchbishopIsBishopPlusKnight(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Archbishop, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Len(t, dest, 9)
	for i := 1; i <= 7; i++ {
		assert.Contains(t, dest, board.Square{Row: i, Col: i}) // long diagonal
	}
	assert.Contains(t, dest, board.Square{Row: 1, Col: 2})
	assert.Contains(t, dest, board.Square{Row: 2, Col: 1})
	assert.NotContains(t, dest, board.Square{Row: 1, Col: 0}) // not a rook move
}

func TestChancellorIsRookPlusKnight(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Chancellor, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Len(t, dest, 16)
	for i := 1; i <= 7; i++ {
		assert.Contains(t, dest, board.Square{Row: 0, Col: i})
		assert.Contains(t, dest, board.Square{Row: i, Col: 0})
	}
	assert.Contains(t, dest, board.Square{Row: 1, Col: 2})
	assert.Contains(t, dest, board.Square{Row: 2, Col: 1})
	assert.NotContains(t, dest, board.Square{Row: 1, Col: 1}) // not a bishop move
}

func TestCamelLeapsThreeOne(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Camel, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{{Row: 1, Col: 3}, {Row: 3, Col: 1}}, dest)
}

func TestZebraLeapsThreeTwo(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Zebra, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{{Row: 2, Col: 3}, {Row: 3, Col: 2}}, dest)
}

func TestMannStepsOneInAnyDirection(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Mann, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{{Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}, dest)
}

func TestElephantStepsOneInAnyDirection(t *testing.T) {
	// Same single-step reach as Mann, never blocked in transit since it has none.
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Elephant, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{{Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}, dest)
}

func TestNightriderSlidesRepeatedKnightJumps(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Nightrider, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{
		{Row: 1, Col: 2}, {Row: 2, Col: 4}, {Row: 3, Col: 6},
		{Row: 2, Col: 1}, {Row: 4, Col: 2}, {Row: 6, Col: 3},
	}, dest)
}

func TestNightriderBlockedByInterveningPiece(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Nightrider, origin)
	b.SetPiece(board.Square{Row: 2, Col: 4}, board.Pawn.Owned(board.White))
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Contains(t, dest, board.Square{Row: 1, Col: 2}) // before the blocker
	assert.NotContains(t, dest, board.Square{Row: 2, Col: 4})
	assert.NotContains(t, dest, board.Square{Row: 3, Col: 6}) // beyond the blocker
}

func TestChampionReachesTwoSquaresUnblocked(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Champion, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{
		{Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 2, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 2},
	}, dest)
}

func TestCentaurIsMannPlusKnight(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Centaur, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.ElementsMatch(t, []board.Square{
		{Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 1, Col: 2}, {Row: 2, Col: 1},
	}, dest)
}

func TestAmazonIsQueenPlusKnight(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(8, 8, board.Amazon, origin)
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Len(t, dest, 23) // 7 rook-file + 7 rook-rank + 7 diagonal + 2 knight
	assert.Contains(t, dest, board.Square{Row: 0, Col: 7})
	assert.Contains(t, dest, board.Square{Row: 7, Col: 0})
	assert.Contains(t, dest, board.Square{Row: 7, Col: 7})
	assert.Contains(t, dest, board.Square{Row: 1, Col: 2})
	assert.Contains(t, dest, board.Square{Row: 2, Col: 1})
}

func TestObstacleTeleportsAnywhereButNeverCaptures(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(4, 4, board.Obstacle, origin)
	occupied := board.Square{Row: 2, Col: 2}
	b.SetPiece(occupied, board.Pawn.Owned(board.Black))
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Len(t, dest, 4*4-2) // every square but its own and the occupied one
	assert.Contains(t, dest, board.Square{Row: 3, Col: 3})
	assert.NotContains(t, dest, occupied)
	assert.NotContains(t, dest, origin)
}

func TestWallTeleportsAnywhereButNeverCaptures(t *testing.T) {
	origin := board.Square{Row: 0, Col: 0}
	b := soloBoard(4, 4, board.Wall, origin)
	occupied := board.Square{Row: 1, Col: 1}
	b.SetPiece(occupied, board.Pawn.Owned(board.Black))
	dest := destinations(b.GeneratePseudoLegal(board.White))

	assert.Len(t, dest, 4*4-2)
	assert.NotContains(t, dest, occupied)
	assert.NotContains(t, dest, origin)
}
