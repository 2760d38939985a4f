package search_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board"
	"github.com/herohde/liberty/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestHistoryBonusIncreasesScore(t *testing.T) {
	h := search.NewHistory()
	sq := board.Square{Row: 3, Col: 3}

	assert.Equal(t, 0, h.Get(board.White, board.Knight, sq))
	h.Bonus(board.White, board.Knight, sq, 4)
	assert.Greater(t, h.Get(board.White, board.Knight, sq), 0)
}

func TestHistoryMalusDecreasesScore(t *testing.T) {
	h := search.NewHistory()
	sq := board.Square{Row: 3, Col: 3}

	h.Bonus(board.White, board.Knight, sq, 4)
	before := h.Get(board.White, board.Knight, sq)
	h.Malus(board.White, board.Knight, sq, 4)
	assert.Less(t, h.Get(board.White, board.Knight, sq), before)
}

func TestKillersStoreAndMatch(t *testing.T) {
	k := search.NewKillers(16)
	m := board.Move{From: board.Square{Row: 1, Col: 1}, To: board.Square{Row: 3, Col: 1}}

	assert.False(t, k.Are(2, m))
	k.Store(2, m)
	assert.True(t, k.Are(2, m))
	assert.False(t, k.Are(3, m))
}
