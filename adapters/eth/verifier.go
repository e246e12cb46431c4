package eth

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

const signatureLength = 65

// Verifier checks personal_sign signatures produced by Ethereum wallets.
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a new Verifier
func NewVerifier(logger *zap.Logger) ports.SignatureVerifier {
	return &Verifier{logger: logger}
}

// ValidAddress reports whether address is a well-formed hex Ethereum address.
func (v *Verifier) ValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// Verify recovers the signer of message from signature and compares it
// case-insensitively against the claimed address. Any decode or recovery
// failure is logged and reported as false.
func (v *Verifier) Verify(address, message, signature string) bool {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		v.logger.Debug("signature is not valid hex", zap.Error(err))
		return false
	}
	if len(sig) != signatureLength {
		v.logger.Debug("signature has wrong length", zap.Int("length", len(sig)))
		return false
	}

	// Wallets encode the recovery id as 27/28; go-ethereum expects 0/1.
	sig = append([]byte(nil), sig...)
	if sig[signatureLength-1] >= 27 {
		sig[signatureLength-1] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		v.logger.Debug("public key recovery failed", zap.Error(err))
		return false
	}

	recovered := crypto.PubkeyToAddress(*pubKey)
	if !strings.EqualFold(recovered.Hex(), address) {
		v.logger.Debug("recovered address does not match claim",
			zap.String("recovered", recovered.Hex()))
		return false
	}

	return true
}
