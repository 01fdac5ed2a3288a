package gridsolver

import (
	"math/rand"
	"time"
)

const (
	CLICK_DELAY_MIN_MS    = 200
	CLICK_DELAY_SPREAD_MS = 150
)

// DelayProvider is the pacing and clock source for the solver. Tests
// substitute a deterministic implementation
type DelayProvider interface {
	Now() time.Time

	Sleep(d time.Duration)

	// Pause between simulated tile clicks
	ClickDelay() time.Duration
}

// RandomDelay paces clicks like a human, somewhere in [200ms, 350ms)
type RandomDelay struct{}

func (RandomDelay) Now() time.Time {
	return time.Now()
}

func (RandomDelay) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (RandomDelay) ClickDelay() time.Duration {
	ms := CLICK_DELAY_MIN_MS + rand.Intn(CLICK_DELAY_SPREAD_MS)
	return time.Duration(ms) * time.Millisecond
}
