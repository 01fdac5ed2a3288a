package gridsolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRandomClickDelayRange(t *testing.T) {
	delay := RandomDelay{}

	for i := 0; i < 1000; i++ {
		d := delay.ClickDelay()
		require.GreaterOrEqual(t, d, 200*time.Millisecond)
		require.Less(t, d, 350*time.Millisecond)
	}
}
