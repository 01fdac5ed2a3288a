package gridsolver

import (
	"time"

	"go.uber.org/zap"
)

const (
	DEFAULT_ATTEMPT_LIMIT    = 3
	DEFAULT_RECOVERY_TIMEOUT = time.Second * 30
	DEFAULT_POLL_INTERVAL    = time.Second
	DEFAULT_POLL_TIMEOUT     = time.Second * 10
	RECOVERY_RELOAD_INTERVAL = time.Second
	CHALLENGE_RENDER_WAIT    = time.Second * 10
)

// Model of a solver
type Model struct {
	// Remote service credentials
	APIKey string `json:"api_key"`

	// Service tier, TIER_FREE or TIER_PRO. Selects the solver endpoint
	Tier string `json:"tier"`

	// Override for the solver base URL. Takes priority over Tier
	Endpoint string `json:"endpoint"`

	// Override for the site url sent to the service. By default taken from the page
	SiteURL string `json:"site_url"`

	// How many attempts before giving up
	AttemptLimit int `json:"attempt_limit"`

	// Budget for waiting out a skipped challenge
	RecoveryTimeout time.Duration `json:"recovery_timeout"`

	// Pause between result polls for a pending verdict
	PollInterval time.Duration `json:"poll_interval"`

	// Total budget for polling a pending verdict
	PollTimeout time.Duration `json:"poll_timeout"`

	// Enable progress logging
	Debug bool `json:"debug"`

	// Injected logger. When nil a development logger is built in debug
	// mode, otherwise logging is off
	Logger *zap.Logger `json:"-"`

	// Injected pacing source. Randomized by default
	Delay DelayProvider `json:"-"`
}

func (m *Model) applyDefaults() {
	if m.Tier == "" {
		m.Tier = TIER_FREE
	}
	if m.AttemptLimit < 1 {
		m.AttemptLimit = DEFAULT_ATTEMPT_LIMIT
	}
	if m.RecoveryTimeout <= 0 {
		m.RecoveryTimeout = DEFAULT_RECOVERY_TIMEOUT
	}
	if m.PollInterval <= 0 {
		m.PollInterval = DEFAULT_POLL_INTERVAL
	}
	if m.PollTimeout <= 0 {
		m.PollTimeout = DEFAULT_POLL_TIMEOUT
	}
}

// ---------------------------------- Геттери властивостей ----------------------------------

func (m *Model) endpoint() string {
	if m.Endpoint != "" {
		return m.Endpoint
	}
	return EndpointForTier(m.Tier)
}

func (m *Model) logger() *zap.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	if m.Debug {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}
