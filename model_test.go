package gridsolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModelDefaults(t *testing.T) {
	solver := NewSolver(nil)

	require.Equal(t, 3, solver.Model.AttemptLimit)
	require.Equal(t, 30*time.Second, solver.Model.RecoveryTimeout)
	require.Equal(t, time.Second, solver.Model.PollInterval)
	require.Equal(t, 10*time.Second, solver.Model.PollTimeout)
	require.Equal(t, TIER_FREE, solver.Model.Tier)
}

func TestModelEndpointOverride(t *testing.T) {
	model := &Model{Tier: TIER_PRO}
	model.applyDefaults()
	require.Equal(t, PRO_BASE_URL, model.endpoint())

	model.Endpoint = "http://localhost:8080"
	require.Equal(t, "http://localhost:8080", model.endpoint())
}

func TestSolveErrorKind(t *testing.T) {
	err := newSolveError(RECOVERY_TIMEOUT, "never changed", nil)

	require.True(t, IsKind(err, RECOVERY_TIMEOUT))
	require.False(t, IsKind(err, UNSOLVED))
	require.Contains(t, err.Error(), "recovery_timeout")
}
