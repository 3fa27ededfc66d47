// Package signature provides helper functions for handling the blockchain
// signature needs.
package signature

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := crypto.Keccak256(data)
	return hexutil.Encode(hash)
}

// Sign uses the specified private key to sign the payload, returning a
// 65 byte [R|S|V] signature.
func Sign(payload []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	data := stamp(payload)

	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, err
	}

	// Check the signature right away against the public key that
	// produced it. A signature we can't verify ourselves is useless
	// to any other node.
	publicKey := crypto.CompressPubkey(&privateKey.PublicKey)
	if !crypto.VerifySignature(publicKey, data, sig[:crypto.RecoveryIDOffset]) {
		return nil, errors.New("invalid signature produced")
	}

	return sig, nil
}

// Verify reports whether the signature over the payload was produced by
// the owner of the specified public key. The public key is expected in
// compressed 33 byte form, the signature in [R|S] or [R|S|V] form.
func Verify(publicKey []byte, payload []byte, sig []byte) bool {
	if len(sig) < crypto.RecoveryIDOffset {
		return false
	}

	data := stamp(payload)
	return crypto.VerifySignature(publicKey, data, sig[:crypto.RecoveryIDOffset])
}

// PublicKeyString returns the hex encoding of the compressed public key
// for the specified private key. This is how output owners are identified
// on the ledger.
func PublicKeyString(privateKey *ecdsa.PrivateKey) string {
	return hexutil.Encode(crypto.CompressPubkey(&privateKey.PublicKey))
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the payload with a
// stamp embedded into the final hash. The stamp keeps signatures produced
// here from being valid in any other context.
func stamp(payload []byte) []byte {
	txHash := crypto.Keccak256(payload)

	stamp := []byte("\x19Utxo Signed Message:\n32")

	return crypto.Keccak256(stamp, txHash)
}
