package board_test

import (
	"testing"

	"github.com/herohde/liberty/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perftScenario is one of the mandatory perft vectors: a starting L-FEN and the
// expected leaf count at each depth, shallowest first. Only the first two depths of
// each published vector are checked here; the full vectors run much deeper and belong
// to cmd/perft, not a unit test's budget.
type perftScenario struct {
	name           string
	fen            string
	depth1, depth2 int
}

func TestPerftMandatoryScenarios(t *testing.T) {
	scenarios := []perftScenario{
		{
			name:   "standard chess",
			fen:    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			depth1: 20, depth2: 400,
		},
		{
			name:   "5x6 mini chess",
			fen:    "qkbnr/ppppp/5/5/PPPPP/QKBNR w Kk - 0 1 1",
			depth1: 7, depth2: 49,
		},
		{
			name:   "kiwipete-style castling/en-passant stress position",
			fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
			depth1: 48, depth2: 2039,
		},
		{
			name:   "sparse endgame position",
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
			depth1: 14, depth2: 191,
		},
		{
			name:   "10x8 archbishop/chancellor board",
			fen:    "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq -",
			depth1: 28, depth2: 784,
		},
		{
			name:   "knight-only board",
			fen:    "nnnnknnn/pppppppp/8/8/8/8/PPPPPPPP/NNNNKNNN w - - 0 1 - iznl",
			depth1: 28, depth2: 784,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			b, err := fen.Decode(s.fen)
			require.NoError(t, err)

			assert.Equal(t, s.depth1, perft(b, 1), "depth 1")
			assert.Equal(t, s.depth2, perft(b, 2), "depth 2")
		})
	}
}
