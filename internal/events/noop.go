package events

import "context"

// NoopPublisher is a Publisher that does nothing (used by the CLI, which
// has no live subscribers).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
