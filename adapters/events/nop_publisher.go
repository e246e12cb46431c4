package events

import (
	"context"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

// NopPublisher discards all events. Used when no message broker is configured
// and in tests.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that drops everything.
func NewNopPublisher() ports.EventPublisher {
	return NopPublisher{}
}

func (NopPublisher) PublishLogin(ctx context.Context, address, sessionID string) error {
	return nil
}

func (NopPublisher) PublishLogout(ctx context.Context, address, sessionID string) error {
	return nil
}
