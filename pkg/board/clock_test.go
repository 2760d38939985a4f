package board_test

import (
	"testing"
	"time"

	"github.com/herohde/liberty/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestClockTypeString(t *testing.T) {
	assert.Equal(t, "No Clock", board.NoClock.String())
	assert.Equal(t, "Increment", board.Increment.String())
	assert.Equal(t, "Increment with Handicap", board.Handicap.String())
}

func TestClockUpdateDecrementsSideToMoveOnly(t *testing.T) {
	c := board.NewClock(board.Increment, time.Minute, time.Minute, 0, 0, board.White)
	c.Update()

	assert.True(t, c.White <= time.Minute)
	assert.Equal(t, time.Minute, c.Black)
	assert.False(t, c.Flagged)
}

func TestClockUpdateFlagsOnUnderflow(t *testing.T) {
	c := board.NewClock(board.Increment, 0, time.Minute, 0, 0, board.White)
	time.Sleep(time.Millisecond)
	c.Update()

	assert.Equal(t, time.Duration(0), c.White)
	assert.True(t, c.Flagged)
}

func TestClockSwitchClocksCreditsIncrementAndFlipsToMove(t *testing.T) {
	c := board.NewClock(board.Increment, time.Minute, time.Minute, 5*time.Second, 5*time.Second, board.White)
	c.SwitchClocks()

	assert.Equal(t, board.Black, c.ToMove)
	assert.True(t, c.White > time.Minute) // increment credited, net of the tiny elapsed update
}

func TestClockHandicapAllowsAsymmetricTimes(t *testing.T) {
	c := board.NewClock(board.Handicap, 2*time.Minute, time.Minute, 0, 10*time.Second, board.White)
	assert.NotEqual(t, c.White, c.Black)
	assert.NotEqual(t, c.WhiteInc, c.BlackInc)
}

func TestClockSwitchClocksNoopOnceFlagged(t *testing.T) {
	c := board.NewClock(board.Increment, 0, time.Minute, 5*time.Second, 5*time.Second, board.White)
	c.Update()
	flaggedBefore := c.Flagged
	c.SwitchClocks()

	assert.Equal(t, flaggedBefore, c.Flagged)
	assert.Equal(t, board.White, c.ToMove) // flagged before the move could be credited/flipped
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "1:05", board.FormatClock(65*time.Second))
	assert.Equal(t, "0:00", board.FormatClock(0))
	assert.Equal(t, "10:00", board.FormatClock(10*time.Minute))
}
