package ports

import "context"

// EventPublisher publishes auth events to notify other instances
type EventPublisher interface {
	PublishLogin(ctx context.Context, address, sessionID string) error
	PublishLogout(ctx context.Context, address, sessionID string) error
}
