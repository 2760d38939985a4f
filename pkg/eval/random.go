package eval

import (
	"context"
	"math/rand"

	"github.com/herohde/liberty/pkg/board"
)

// Random adds a small amount of noise to an evaluation, in centipawns, in the range
// [-limit/2, limit-limit/2) (e.g. -5..4 for a limit of 10). A zero limit always
// returns a draw score and is used to
// disable the feature without special-casing callers.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(_ context.Context, _ *board.Board) Score {
	if n.limit <= 0 {
		return DrawScore
	}
	return Centipawns(n.rand.Intn(n.limit) - n.limit/2)
}
