package events

import "context"

// NoopPublisher discards every event. Used when eventing is disabled.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishAlert(ctx context.Context, ev AlertEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
