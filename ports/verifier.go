package ports

// SignatureVerifier checks wallet ownership proofs.
type SignatureVerifier interface {
	// Verify reports whether signature is a valid signature of message under
	// the key controlling address. It never returns an error: malformed input
	// and recovery failures all downgrade to false.
	Verify(address, message, signature string) bool

	// ValidAddress reports whether address is a well-formed account identifier.
	ValidAddress(address string) bool
}
