package database

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// TxInput spends one unspent output by referencing the transaction that
// produced it and carrying a signature by the output's owner.
type TxInput struct {
	TxID      string `json:"tx_id"`
	Index     uint32 `json:"index"`
	Signature string `json:"signature"`
}

// UTXOID returns the id of the output this input is spending.
func (in TxInput) UTXOID() UTXOID {
	return UTXOID{TxID: in.TxID, Index: in.Index}
}

// =============================================================================

// Tx moves value from a set of unspent outputs to a new set of outputs.
// The nonce distinguishes otherwise identical transactions and is set to
// the block height for coinbase transactions.
type Tx struct {
	Nonce   uint64     `json:"nonce"`
	Inputs  []TxInput  `json:"inputs"`
	Outputs []TxOutput `json:"outputs"`
}

// NewTx constructs an unsigned transaction spending the specified outputs.
func NewTx(nonce uint64, spends []UTXOID, outputs []TxOutput) Tx {
	inputs := make([]TxInput, len(spends))
	for i, id := range spends {
		inputs[i] = TxInput{TxID: id.TxID, Index: id.Index}
	}

	return Tx{
		Nonce:   nonce,
		Inputs:  inputs,
		Outputs: outputs,
	}
}

// NewCoinbaseTx constructs the reward creating transaction included once
// per block. It has no inputs and produces exactly one output.
func NewCoinbaseTx(blockHeight uint64, beneficiaryID string, reward uint64) Tx {
	return Tx{
		Nonce: blockHeight,
		Outputs: []TxOutput{
			{Value: reward, OwnerID: beneficiaryID},
		},
	}
}

// ID returns the content hash identity for the transaction.
func (tx Tx) ID() string {
	return signature.Hash(tx)
}

// SigningPayload returns the canonical bytes the owner of the referenced
// output must sign for the input at the specified index. The payload
// covers the input's output reference and every output of the
// transaction, so a signature cannot be replayed against different
// spending terms.
func (tx Tx) SigningPayload(index int) ([]byte, error) {
	if index < 0 || index >= len(tx.Inputs) {
		return nil, fmt.Errorf("input index %d out of range", index)
	}

	payload := struct {
		TxID    string     `json:"tx_id"`
		Index   uint32     `json:"index"`
		Outputs []TxOutput `json:"outputs"`
	}{
		TxID:    tx.Inputs[index].TxID,
		Index:   tx.Inputs[index].Index,
		Outputs: tx.Outputs,
	}

	return json.Marshal(payload)
}

// SignInput uses the specified private key to sign the input at the
// specified index.
func (tx *Tx) SignInput(index int, privateKey *ecdsa.PrivateKey) error {
	payload, err := tx.SigningPayload(index)
	if err != nil {
		return err
	}

	sig, err := signature.Sign(payload, privateKey)
	if err != nil {
		return err
	}

	tx.Inputs[index].Signature = hexutil.Encode(sig)

	return nil
}

// =============================================================================

// Hash implements the merkle Hashable interface for providing a hash of
// a transaction.
func (tx Tx) Hash() ([]byte, error) {
	return hexutil.Decode(tx.ID())
}

// Equals implements the merkle Hashable interface for providing an
// equality check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.ID() == otherTx.ID()
}
