package database

import (
	"fmt"
	"strconv"
	"strings"
)

// UTXOID uniquely identifies a spendable output as the pair of the
// producing transaction id and the output position inside it.
type UTXOID struct {
	TxID  string
	Index uint32
}

// String implements the fmt.Stringer interface.
func (id UTXOID) String() string {
	return fmt.Sprintf("%s:%d", id.TxID, id.Index)
}

// MarshalText implements the TextMarshaler interface so a UTXOID can be
// used as a JSON map key.
func (id UTXOID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements the TextUnmarshaler interface.
func (id *UTXOID) UnmarshalText(text []byte) error {
	txID, index, found := strings.Cut(string(text), ":")
	if !found {
		return fmt.Errorf("utxo id %q is not in tx:index form", text)
	}

	idx, err := strconv.ParseUint(index, 10, 32)
	if err != nil {
		return fmt.Errorf("utxo id %q has an invalid index: %w", text, err)
	}

	id.TxID = txID
	id.Index = uint32(idx)

	return nil
}

// =============================================================================

// TxOutput represents a unit of value on the ledger owned by the holder
// of the specified public key. An output is produced once and consumed
// by at most one later input.
type TxOutput struct {
	Value   uint64 `json:"value"`
	OwnerID string `json:"owner_id"`
}

// =============================================================================

// LedgerSet represents the complete set of unspent outputs at one point
// in chain history. A ledger set is never shared across branches by
// mutation. Each accepted block owns an independent snapshot.
type LedgerSet map[UTXOID]TxOutput

// NewLedgerSet constructs an empty ledger set.
func NewLedgerSet() LedgerSet {
	return make(LedgerSet)
}

// Clone makes an independent copy of the ledger set.
func (ls LedgerSet) Clone() LedgerSet {
	clone := make(LedgerSet, len(ls))
	for id, out := range ls {
		clone[id] = out
	}
	return clone
}

// OwnerOutputs returns the subset of the ledger owned by the specified
// public key.
func (ls LedgerSet) OwnerOutputs(ownerID string) LedgerSet {
	outputs := make(LedgerSet)
	for id, out := range ls {
		if out.OwnerID == ownerID {
			outputs[id] = out
		}
	}
	return outputs
}

// Balance sums the value of all outputs owned by the specified public key.
func (ls LedgerSet) Balance(ownerID string) uint64 {
	var balance uint64
	for _, out := range ls {
		if out.OwnerID == ownerID {
			balance += out.Value
		}
	}
	return balance
}
