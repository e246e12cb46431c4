package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

const sessionKeyPrefix = "crowdstaking:session:"

// RedisStore is a Redis implementation of the SessionStore interface. Each
// session is a JSON record with a per-key TTL, so Redis itself expires
// abandoned sessions and Sweep has nothing left to do.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a new Redis session store
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

type sessionRecord struct {
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create issues a new session for address with a 7-day TTL.
func (s *RedisStore) Create(ctx context.Context, address string) (*core.Session, error) {
	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   core.NormalizeAddress(address),
		CreatedAt: now,
		ExpiresAt: now.Add(core.SessionTTL),
	}

	payload, err := json.Marshal(sessionRecord{
		Address:   session.Address,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	key := sessionKeyPrefix + session.ID
	if err := s.client.Set(ctx, key, payload, core.SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	return session, nil
}

// Verify resolves sessionID to its wallet address. A Redis outage surfaces as
// core.ErrStoreOperationFailed, distinct from an absent or expired session.
func (s *RedisStore) Verify(ctx context.Context, sessionID string) (string, error) {
	key := sessionKeyPrefix + sessionID

	payload, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return "", core.ErrSessionInvalid
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}

	// The TTL should have expired the key already; this covers clock drift
	// between instances.
	if time.Now().After(record.ExpiresAt) {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return "", core.ErrSessionInvalid
	}

	return record.Address, nil
}

// Delete removes a session. Unknown IDs are a no-op.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}

// Sweep is a no-op: the per-key TTL set at Create subsumes it.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

var _ ports.SessionStore = (*RedisStore)(nil)
