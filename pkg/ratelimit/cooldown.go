package ratelimit

import (
	"sync"
	"time"

	"golang-sentiment-tracker/pkg/logger"
)

// CooldownTracker is a per-service circuit breaker. When an external
// provider signals throttling, the service enters a timed cooldown and
// callers skip it until the cooldown passes. Expiry is lazy: the first
// availability check after the deadline clears the state.
type CooldownTracker struct {
	serviceName     string
	defaultCooldown time.Duration
	logger          *logger.Logger

	mu            sync.Mutex
	cooldownUntil time.Time
	message       string
}

// CooldownStatus is a point-in-time snapshot of a tracker.
type CooldownStatus struct {
	Service          string     `json:"service"`
	Available        bool       `json:"available"`
	CooldownUntil    *time.Time `json:"cooldown_until,omitempty"`
	RemainingSeconds *int       `json:"remaining_seconds,omitempty"`
	Message          string     `json:"message,omitempty"`
}

// NewCooldownTracker creates a tracker for the named service.
func NewCooldownTracker(serviceName string, defaultCooldown time.Duration, log *logger.Logger) *CooldownTracker {
	if defaultCooldown <= 0 {
		defaultCooldown = 60 * time.Second
	}
	return &CooldownTracker{
		serviceName:     serviceName,
		defaultCooldown: defaultCooldown,
		logger:          log,
	}
}

// IsAvailable reports whether the service may be called. An expired
// cooldown is cleared as a side effect.
func (t *CooldownTracker) IsAvailable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cooldownUntil.IsZero() {
		return true
	}

	if !time.Now().Before(t.cooldownUntil) {
		t.clearLocked()
		return true
	}

	return false
}

// EnterCooldown puts the service into cooldown. A non-positive duration
// uses the per-service default. An existing cooldown is overwritten.
func (t *CooldownTracker) EnterCooldown(message string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if duration <= 0 {
		duration = t.defaultCooldown
	}
	t.cooldownUntil = time.Now().Add(duration)
	t.message = message

	if t.logger != nil {
		t.logger.Warn("Service entering cooldown",
			logger.StringField("service", t.serviceName),
			logger.Field("duration", duration),
			logger.StringField("reason", message),
		)
	}
}

// RemainingCooldown returns the remaining cooldown in whole seconds.
// The second return value is false when no cooldown is set.
func (t *CooldownTracker) RemainingCooldown() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cooldownUntil.IsZero() {
		return 0, false
	}

	remaining := int(time.Until(t.cooldownUntil).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// Status returns a snapshot for the rate-limit status endpoint.
func (t *CooldownTracker) Status() CooldownStatus {
	available := t.IsAvailable()

	t.mu.Lock()
	defer t.mu.Unlock()

	status := CooldownStatus{
		Service:   t.serviceName,
		Available: available,
	}
	if !available {
		until := t.cooldownUntil
		remaining := int(time.Until(until).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		status.CooldownUntil = &until
		status.RemainingSeconds = &remaining
		status.Message = t.message
	}
	return status
}

func (t *CooldownTracker) clearLocked() {
	if !t.cooldownUntil.IsZero() && t.logger != nil {
		t.logger.Info("Service cooldown cleared", logger.StringField("service", t.serviceName))
	}
	t.cooldownUntil = time.Time{}
	t.message = ""
}
