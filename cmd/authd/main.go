package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/adapters/eth"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/adapters/events"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/adapters/store"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/internal/config"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/internal/logging"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/service"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Production())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		sessionStore ports.SessionStore
		eventPub     ports.EventPublisher = events.NewNopPublisher()
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to parse redis url", zap.Error(err))
		}

		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			logger.Fatal("failed to create event publisher", zap.Error(err))
		}

		sessionStore = store.NewRedisStore(redisClient, logger)
		eventPub = events.NewWatermillPublisher(publisher)
		logger.Info("using redis session store", zap.String("addr", opts.Addr))
	} else {
		sessionStore = store.NewMemoryStore()
		logger.Info("using in-memory session store; sessions will not survive a restart")
	}

	verifier := eth.NewVerifier(logger)

	var svcOpts []service.Option
	if cfg.ChallengeMaxAge > 0 {
		svcOpts = append(svcOpts, service.WithChallengeMaxAge(cfg.ChallengeMaxAge))
	}

	authService := service.NewAuthService(verifier, sessionStore, eventPub, cfg.AuthDomain, logger, svcOpts...)

	// The sweeper is owned here: it starts with the process and stops with it.
	var wg sync.WaitGroup
	sweeper := service.NewSweeper(sessionStore, cfg.SweepInterval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	router := http.SetupRouter(authService, cfg.Production())

	server := &nethttp.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting auth server", zap.String("addr", cfg.ListenAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}

	wg.Wait()
	logger.Info("shutdown complete")
}
