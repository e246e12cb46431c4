package ports

import (
	"context"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
)

// SessionStore owns all session records. Implementations must be safe for
// concurrent use by request handlers and the background sweeper.
type SessionStore interface {
	// Create issues a new session for the given (already verified) address and
	// returns it. The address is stored lower-cased.
	Create(ctx context.Context, address string) (*core.Session, error)

	// Verify resolves a session ID to its wallet address. An unknown or
	// expired ID yields core.ErrSessionInvalid; an expired record is removed
	// as a side effect. Store faults yield core.ErrStoreOperationFailed.
	Verify(ctx context.Context, sessionID string) (string, error)

	// Delete removes a session. Deleting an unknown or already-expired ID is
	// not an error.
	Delete(ctx context.Context, sessionID string) error

	// Sweep removes every expired session and reports how many were removed.
	// Stores with native per-record expiry may implement it as a no-op.
	Sweep(ctx context.Context) (int, error)
}
