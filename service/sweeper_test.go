package service_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/service"
)

type countingStore struct {
	sweeps atomic.Int64
}

func (s *countingStore) Create(ctx context.Context, address string) (*core.Session, error) {
	return nil, core.ErrStoreOperationFailed
}

func (s *countingStore) Verify(ctx context.Context, sessionID string) (string, error) {
	return "", core.ErrSessionInvalid
}

func (s *countingStore) Delete(ctx context.Context, sessionID string) error {
	return nil
}

func (s *countingStore) Sweep(ctx context.Context) (int, error) {
	s.sweeps.Add(1)
	return 0, nil
}

func TestSweeperRunsAndStops(t *testing.T) {
	fake := &countingStore{}
	sweeper := service.NewSweeper(fake, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return fake.sweeps.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
