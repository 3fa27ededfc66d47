// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file. Nodes sharing the same genesis
// file derive the same genesis block and therefore the same chain.
type Genesis struct {
	Date           time.Time `json:"date"`
	ChainID        uint16    `json:"chain_id"`        // The chain id represents an unique id for this running instance.
	TransPerBlock  uint16    `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
	CoinbaseReward uint64    `json:"coinbase_reward"` // Value created by the coinbase transaction of each block.
	BeneficiaryID  string    `json:"beneficiary"`     // Public key receiving the genesis coinbase output.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
