package ratelimit

import (
	"sort"
	"sync"
	"time"

	"golang-sentiment-tracker/pkg/logger"
)

// Registry holds the cooldown trackers for all external services. One
// instance is constructed at process start and injected into the
// services that talk to providers.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*CooldownTracker
	logger   *logger.Logger
}

// NewRegistry creates an empty tracker registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		trackers: make(map[string]*CooldownTracker),
		logger:   log,
	}
}

// Register creates and stores a tracker for the named service. Calling
// Register twice for the same name returns the existing tracker.
func (r *Registry) Register(serviceName string, defaultCooldown time.Duration) *CooldownTracker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.trackers[serviceName]; ok {
		return t
	}
	t := NewCooldownTracker(serviceName, defaultCooldown, r.logger)
	r.trackers[serviceName] = t
	return t
}

// Get returns the tracker for the named service, or nil when unknown.
func (r *Registry) Get(serviceName string) *CooldownTracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trackers[serviceName]
}

// AllStatus returns the status of every registered service, sorted by
// service name for stable API responses.
func (r *Registry) AllStatus() []CooldownStatus {
	r.mu.Lock()
	trackers := make([]*CooldownTracker, 0, len(r.trackers))
	for _, t := range r.trackers {
		trackers = append(trackers, t)
	}
	r.mu.Unlock()

	statuses := make([]CooldownStatus, 0, len(trackers))
	for _, t := range trackers {
		statuses = append(statuses, t.Status())
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Service < statuses[j].Service
	})
	return statuses
}
