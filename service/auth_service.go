package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

// AuthService handles wallet authentication business logic
type AuthService struct {
	verifier ports.SignatureVerifier
	store    ports.SessionStore
	eventPub ports.EventPublisher
	logger   *zap.Logger

	domain string
	// maxChallengeAge rejects challenge messages older than this at login.
	// Zero disables the check.
	maxChallengeAge time.Duration
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithChallengeMaxAge enables rejection of challenge messages whose embedded
// issuance timestamp is older than maxAge.
func WithChallengeMaxAge(maxAge time.Duration) Option {
	return func(s *AuthService) {
		s.maxChallengeAge = maxAge
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	verifier ports.SignatureVerifier,
	store ports.SessionStore,
	eventPub ports.EventPublisher,
	domain string,
	logger *zap.Logger,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		verifier: verifier,
		store:    store,
		eventPub: eventPub,
		logger:   logger,
		domain:   domain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Challenge builds the message the wallet must sign to prove control of
// address. The generator does not check ownership; that happens at login.
func (s *AuthService) Challenge(address string) (string, error) {
	if !s.verifier.ValidAddress(address) {
		return "", core.ErrInvalidAddress
	}

	challenge := &core.Challenge{
		Address:  address,
		Domain:   s.domain,
		IssuedAt: time.Now(),
	}

	return RenderChallenge(challenge), nil
}

// Login runs the full login protocol: validate the claimed address, check it
// against the address embedded in the signed message, verify the signature,
// and only then create a session. No side effects occur before the final step.
func (s *AuthService) Login(ctx context.Context, address, message, signature string) (*core.Session, error) {
	if address == "" || message == "" || signature == "" {
		return nil, core.ErrInvalidAddress
	}
	if !s.verifier.ValidAddress(address) {
		return nil, core.ErrInvalidAddress
	}

	// A signed message for one address must not be replayable against a
	// different claimed address.
	embedded, ok := ExtractAddress(message)
	if !ok {
		return nil, core.ErrAddressMismatch
	}
	if !strings.EqualFold(embedded, address) {
		return nil, core.ErrAddressMismatch
	}

	if s.maxChallengeAge > 0 {
		issuedAt, ok := ExtractIssuedAt(message)
		if !ok || time.Since(issuedAt) > s.maxChallengeAge {
			return nil, core.ErrChallengeExpired
		}
	}

	if !s.verifier.Verify(address, message, signature) {
		return nil, core.ErrInvalidSignature
	}

	session, err := s.store.Create(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.eventPub.PublishLogin(ctx, session.Address, session.ID); err != nil {
		// The session already exists; a lost event must not fail the login.
		s.logger.Warn("failed to publish login event", zap.Error(err))
	}

	s.logger.Info("wallet authenticated", zap.String("address", session.Address))

	return session, nil
}

// Identify resolves a session ID to its wallet address.
func (s *AuthService) Identify(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", core.ErrSessionInvalid
	}
	return s.store.Verify(ctx, sessionID)
}

// Logout deletes the session if it exists. It never fails from the caller's
// perspective: failing to clear server state for an already-stale session is
// better than leaving the client logged in.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	address, err := s.store.Verify(ctx, sessionID)
	if err == nil {
		if err := s.eventPub.PublishLogout(ctx, address, sessionID); err != nil {
			s.logger.Warn("failed to publish logout event", zap.Error(err))
		}
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete session on logout", zap.Error(err))
	}
}
