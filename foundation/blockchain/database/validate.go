package database

import (
	"math"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// IsValidTx reports whether the transaction can spend against the
// specified ledger set. A transaction is valid when every input
// references an unspent output in the ledger, no output is referenced
// twice within the transaction, every input signature verifies against
// the referenced output's owner key, and the referenced input value
// covers the output value. The surplus, if any, is the fee.
func IsValidTx(tx Tx, ledger LedgerSet) bool {
	seen := make(map[UTXOID]struct{}, len(tx.Inputs))

	var inputSum uint64
	for i, in := range tx.Inputs {
		id := in.UTXOID()

		out, exists := ledger[id]
		if !exists {
			return false
		}

		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}

		payload, err := tx.SigningPayload(i)
		if err != nil {
			return false
		}

		sig, err := hexutil.Decode(in.Signature)
		if err != nil {
			return false
		}

		owner, err := hexutil.Decode(out.OwnerID)
		if err != nil {
			return false
		}

		if !signature.Verify(owner, payload, sig) {
			return false
		}

		if out.Value > math.MaxUint64-inputSum {
			return false
		}
		inputSum += out.Value
	}

	var outputSum uint64
	for _, out := range tx.Outputs {
		if out.Value > math.MaxUint64-outputSum {
			return false
		}
		outputSum += out.Value
	}

	return inputSum >= outputSum
}

// CommitBatch processes the transactions in the order supplied against a
// copy of the specified ledger set and returns the accepted subset with
// the resulting ledger. Each transaction is checked against the evolving
// ledger, so a transaction spending another's output within the same
// batch commits only if the producing transaction appears first. The
// batch order is the caller's to choose. Rejected transactions are
// silently dropped.
func CommitBatch(txs []Tx, ledger LedgerSet) ([]Tx, LedgerSet) {
	next := ledger.Clone()

	var committed []Tx
	for _, tx := range txs {
		if !IsValidTx(tx, next) {
			continue
		}

		for _, in := range tx.Inputs {
			delete(next, in.UTXOID())
		}

		txID := tx.ID()
		for i, out := range tx.Outputs {
			next[UTXOID{TxID: txID, Index: uint32(i)}] = out
		}

		committed = append(committed, tx)
	}

	return committed, next
}
