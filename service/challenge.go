package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
)

// challengeTemplate is the exact text a wallet is asked to sign. Signing it
// costs nothing and triggers no on-chain action, and the message says so.
const challengeTemplate = `Welcome to CrowdStaking!

Sign this message to prove you own this wallet and log in.
This request will not trigger a blockchain transaction or cost any gas fees.

Address: %s
Issued At: %s
Domain: %s`

var (
	addressLine  = regexp.MustCompile(`(?m)^Address: (0x[0-9a-fA-F]{40})\s*$`)
	issuedAtLine = regexp.MustCompile(`(?m)^Issued At: (\S+)\s*$`)
)

// RenderChallenge formats a challenge into the message the wallet signs.
func RenderChallenge(c *core.Challenge) string {
	return fmt.Sprintf(challengeTemplate, c.Address, c.IssuedAt.UTC().Format(time.RFC3339), c.Domain)
}

// ExtractAddress parses the address out of a challenge message. The second
// return value is false when the Address line is absent or malformed; callers
// treat that as an authentication failure, not an error.
func ExtractAddress(message string) (string, bool) {
	m := addressLine.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractIssuedAt parses the issuance timestamp out of a challenge message.
func ExtractIssuedAt(message string) (time.Time, bool) {
	m := issuedAtLine.FindStringSubmatch(message)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
