package eth_test

import (
	"crypto/ecdsa"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/adapters/eth"
)

func newKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// signMessage signs the way wallets do: prefixed hash, recovery id 27/28.
func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[64] += 27
	return hexutil.Encode(sig)
}

func TestVerify(t *testing.T) {
	verifier := eth.NewVerifier(zap.NewNop())

	key, address := newKey(t)
	message := "sign in to example.org"
	signature := signMessage(t, key, message)

	t.Run("valid signature", func(t *testing.T) {
		require.True(t, verifier.Verify(address, message, signature))
	})

	t.Run("address case is ignored", func(t *testing.T) {
		require.True(t, verifier.Verify(strings.ToLower(address), message, signature))
		require.True(t, verifier.Verify("0x"+strings.ToUpper(address[2:]), message, signature))
	})

	t.Run("other address rejected", func(t *testing.T) {
		_, other := newKey(t)
		require.False(t, verifier.Verify(other, message, signature))
	})

	t.Run("tampered message rejected", func(t *testing.T) {
		require.False(t, verifier.Verify(address, message+" extra", signature))
	})

	t.Run("raw recovery id accepted", func(t *testing.T) {
		sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
		require.NoError(t, err)
		require.True(t, verifier.Verify(address, message, hexutil.Encode(sig)))
	})

	t.Run("malformed signatures downgrade to false", func(t *testing.T) {
		for _, sig := range []string{"", "not-hex", "0x1234", "0x" + string(make([]byte, 130))} {
			require.False(t, verifier.Verify(address, message, sig))
		}
	})
}

func TestValidAddress(t *testing.T) {
	verifier := eth.NewVerifier(zap.NewNop())

	_, address := newKey(t)
	require.True(t, verifier.ValidAddress(address))
	require.False(t, verifier.ValidAddress(""))
	require.False(t, verifier.ValidAddress("0x1234"))
	require.False(t, verifier.ValidAddress("not an address"))
}
