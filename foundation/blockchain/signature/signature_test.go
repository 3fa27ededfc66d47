package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_SignVerify(t *testing.T) {
	t.Log("Given the need to sign payloads and verify them by public key.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen signing a payload with a known key.", testID)
		{
			privateKey, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to load the private key: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to load the private key.", success, testID)

			payload := []byte(`{"value":100}`)

			sig, err := signature.Sign(payload, privateKey)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to sign the payload: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to sign the payload.", success, testID)

			if len(sig) != crypto.SignatureLength {
				t.Errorf("\t%s\tTest %d:\tShould produce a %d byte signature, got %d.", failed, testID, crypto.SignatureLength, len(sig))
			} else {
				t.Logf("\t%s\tTest %d:\tShould produce a %d byte signature.", success, testID, crypto.SignatureLength)
			}

			publicKey, err := hexutil.Decode(signature.PublicKeyString(privateKey))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the public key: %v", failed, testID, err)
			}

			if !signature.Verify(publicKey, payload, sig) {
				t.Errorf("\t%s\tTest %d:\tShould verify against the signer's public key.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould verify against the signer's public key.", success, testID)
			}

			if signature.Verify(publicKey, []byte(`{"value":101}`), sig) {
				t.Errorf("\t%s\tTest %d:\tShould not verify a tampered payload.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould not verify a tampered payload.", success, testID)
			}

			otherKey, err := crypto.HexToECDSA("9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93")
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to load the second key: %v", failed, testID, err)
			}

			otherPublicKey, err := hexutil.Decode(signature.PublicKeyString(otherKey))
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to decode the second public key: %v", failed, testID, err)
			}

			if signature.Verify(otherPublicKey, payload, sig) {
				t.Errorf("\t%s\tTest %d:\tShould not verify against a different public key.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould not verify against a different public key.", success, testID)
			}

			if signature.Verify(publicKey, payload, sig[:10]) {
				t.Errorf("\t%s\tTest %d:\tShould not verify a truncated signature.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould not verify a truncated signature.", success, testID)
			}
		}
	}
}

func Test_Hash(t *testing.T) {
	t.Log("Given the need to produce stable content hashes.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen hashing the same value twice.", testID)
		{
			type payload struct {
				Value uint64 `json:"value"`
				Owner string `json:"owner"`
			}

			h1 := signature.Hash(payload{Value: 100, Owner: "a"})
			h2 := signature.Hash(payload{Value: 100, Owner: "a"})
			if h1 != h2 {
				t.Errorf("\t%s\tTest %d:\tShould produce the same hash for the same value.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould produce the same hash for the same value.", success, testID)
			}

			h3 := signature.Hash(payload{Value: 101, Owner: "a"})
			if h1 == h3 {
				t.Errorf("\t%s\tTest %d:\tShould produce different hashes for different values.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould produce different hashes for different values.", success, testID)
			}

			if h1 == signature.ZeroHash {
				t.Errorf("\t%s\tTest %d:\tShould not collide with the zero hash.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould not collide with the zero hash.", success, testID)
			}
		}
	}
}
