package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
)

func TestMemoryStoreCreateAndVerify(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session, err := s.Create(ctx, "0xABCDEF0123456789abcdef0123456789ABCDEF01")
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	require.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", session.Address)
	require.Equal(t, core.SessionTTL, session.ExpiresAt.Sub(session.CreatedAt))

	address, err := s.Verify(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.Address, address)
}

func TestMemoryStoreVerifyUnknownID(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Verify(context.Background(), "never-issued")
	require.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestMemoryStoreExpiryBoundary(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	session, err := s.Create(ctx, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	// One second before expiry: still valid.
	s.now = func() time.Time { return created.Add(core.SessionTTL - time.Second) }
	_, err = s.Verify(ctx, session.ID)
	require.NoError(t, err)

	// One second past expiry: invalid, and the record is gone for good.
	s.now = func() time.Time { return created.Add(core.SessionTTL + time.Second) }
	_, err = s.Verify(ctx, session.ID)
	require.ErrorIs(t, err, core.ErrSessionInvalid)
	require.Zero(t, s.Len())

	_, err = s.Verify(ctx, session.ID)
	require.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session, err := s.Create(ctx, "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, session.ID))
	require.NoError(t, s.Delete(ctx, session.ID))
	require.NoError(t, s.Delete(ctx, "never-issued"))

	_, err = s.Verify(ctx, session.ID)
	require.ErrorIs(t, err, core.ErrSessionInvalid)
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// N sessions created long enough ago to be expired.
	s.now = func() time.Time { return base.Add(-core.SessionTTL - time.Hour) }
	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, fmt.Sprintf("0x%040d", i))
		require.NoError(t, err)
	}

	// M live sessions.
	s.now = func() time.Time { return base }
	live := make([]*core.Session, 0, 3)
	for i := 0; i < 3; i++ {
		session, err := s.Create(ctx, fmt.Sprintf("0x%040d", 100+i))
		require.NoError(t, err)
		live = append(live, session)
	}

	removed, err := s.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, removed)
	require.Equal(t, 3, s.Len())

	for _, session := range live {
		address, err := s.Verify(ctx, session.ID)
		require.NoError(t, err)
		require.Equal(t, session.Address, address)
	}
}

func TestMemoryStoreConcurrentCreateUnique(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 10000

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := s.Create(ctx, "0x3333333333333333333333333333333333333333")
			require.NoError(t, err)
			ids <- session.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate session id %s", id)
		seen[id] = struct{}{}
	}
	require.Len(t, seen, n)
}

func TestMemoryStoreConcurrentVerifyAndSweep(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	session, err := s.Create(ctx, "0x4444444444444444444444444444444444444444")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Verify(ctx, session.ID)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Sweep(ctx)
		}()
	}
	wg.Wait()

	// Nothing expired, so the session must have survived every sweep.
	address, err := s.Verify(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.Address, address)
}
