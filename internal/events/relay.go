package events

import (
	"context"
	"sync"
)

// Relay is a Publisher that fans out to targets attached after
// construction. It breaks the startup cycle where the manager needs a
// publisher before the consumers of its events exist.
type Relay struct {
	mu      sync.RWMutex
	targets []Publisher
}

func NewRelay() *Relay {
	return &Relay{}
}

// Attach adds a delivery target. Safe to call while publishing.
func (r *Relay) Attach(p Publisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, p)
}

// Publish delivers the event to every attached target, returning the first
// error encountered after all targets have been tried.
func (r *Relay) Publish(ctx context.Context, topic string, event any) error {
	r.mu.RLock()
	targets := r.targets
	r.mu.RUnlock()

	var first error
	for _, t := range targets {
		if err := t.Publish(ctx, topic, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every attached target, returning the first error.
func (r *Relay) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for _, t := range r.targets {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.targets = nil
	return first
}
