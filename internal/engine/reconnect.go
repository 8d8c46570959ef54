package engine

import (
	"time"

	"niri-workspaces/pkg/config"
)

// ReconnectPolicy decides whether a failed session is retried. attempt counts
// consecutive failed sessions, starting at 1.
type ReconnectPolicy interface {
	Next(attempt int, err error) (time.Duration, bool)
}

// FailFast never reconnects. It is the default.
type FailFast struct{}

func (FailFast) Next(int, error) (time.Duration, bool) { return 0, false }

// FixedDelay retries up to Attempts times, waiting Delay before each retry.
type FixedDelay struct {
	Attempts int
	Delay    time.Duration
}

func (p FixedDelay) Next(attempt int, _ error) (time.Duration, bool) {
	if attempt > p.Attempts {
		return 0, false
	}
	return p.Delay, true
}

// PolicyFromConfig maps the reconnect settings to a policy.
func PolicyFromConfig(r config.Reconnect) ReconnectPolicy {
	if r.Attempts <= 0 {
		return FailFast{}
	}
	return FixedDelay{Attempts: r.Attempts, Delay: r.Delay}
}
