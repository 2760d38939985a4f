package board

import (
	"fmt"
	"time"
)

// ClockType identifies the time-control mode a Clock was created under.
type ClockType uint8

const (
	NoClock ClockType = iota
	Increment
	Handicap
)

func (t ClockType) String() string {
	switch t {
	case NoClock:
		return "No Clock"
	case Increment:
		return "Increment"
	case Handicap:
		return "Increment with Handicap"
	default:
		return "?"
	}
}

// Clock is a two-sided chess clock. It is never consulted inside the search inner
// loop; it only provides a time budget at search start.
type Clock struct {
	Type ClockType

	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	ToMove             Color
	Flagged            bool

	last time.Time
}

// NewClock creates a Clock with the given per-side starting times and increments,
// running from the given side. Handicap mode permits the two sides to start with
// asymmetric times and increments; Increment mode expects them equal.
func NewClock(t ClockType, white, black, whiteInc, blackInc time.Duration, toMove Color) *Clock {
	return &Clock{
		Type:     t,
		White:    white,
		Black:    black,
		WhiteInc: whiteInc,
		BlackInc: blackInc,
		ToMove:   toMove,
		last:     time.Now(),
	}
}

// Update subtracts the wall time elapsed since the last Update/SwitchClocks from the
// side to move's remaining time, clamping to zero and setting Flagged on underflow.
func (c *Clock) Update() {
	elapsed := time.Since(c.last)
	c.last = time.Now()

	if c.ToMove == White {
		if elapsed > c.White {
			c.White = 0
			c.Flagged = true
		} else {
			c.White -= elapsed
		}
	} else {
		if elapsed > c.Black {
			c.Black = 0
			c.Flagged = true
		} else {
			c.Black -= elapsed
		}
	}
}

// SwitchClocks updates the clock, then -- unless it just flagged -- credits the
// increment to the side that just moved and flips ToMove.
func (c *Clock) SwitchClocks() {
	c.Update()
	if c.Flagged {
		return
	}

	if c.ToMove == White {
		c.White += c.WhiteInc
		c.ToMove = Black
	} else {
		c.Black += c.BlackInc
		c.ToMove = White
	}
}

// FormatClock renders a duration as "M:SS" (minutes unpadded, seconds two digits),
// truncating to the second.
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
