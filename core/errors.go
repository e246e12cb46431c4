package core

import "errors"

var (
	// ErrInvalidAddress is returned when the address is not a well-formed
	// Ethereum account identifier.
	ErrInvalidAddress = errors.New("invalid ethereum address")

	// ErrAddressMismatch is returned when the address embedded in a challenge
	// message does not match the address the caller claims.
	ErrAddressMismatch = errors.New("challenge address mismatch")

	// ErrInvalidSignature is returned when a signature does not verify against
	// the claimed address.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrChallengeExpired is returned when a challenge message is older than
	// the configured freshness window.
	ErrChallengeExpired = errors.New("challenge has expired")

	// ErrSessionInvalid is returned when a session token is absent, unknown,
	// or expired.
	ErrSessionInvalid = errors.New("session is invalid")

	// ErrStoreOperationFailed is returned when the session store itself fails.
	// Callers must surface it as a server fault, never as "unauthenticated".
	ErrStoreOperationFailed = errors.New("store operation failed")
)
