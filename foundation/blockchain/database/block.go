package database

import (
	"fmt"

	"github.com/utxolabs/blockchain/foundation/blockchain/merkle"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the parent block, ZeroHash for genesis.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was assembled.
	TransRoot     string `json:"trans_root"`      // Merkle tree root over the coinbase and ordinary transactions.
}

// Block represents a coinbase transaction and a group of ordinary
// transactions batched together.
type Block struct {
	Header   BlockHeader `json:"header"`
	Coinbase Tx          `json:"coinbase"`
	Trans    []Tx        `json:"trans"`
}

// NewBlock constructs a block over the specified parent, committing to
// the transactions through the merkle root in the header.
func NewBlock(prevBlockHash string, timeStamp uint64, coinbase Tx, trans []Tx) (Block, error) {
	root, err := transRoot(coinbase, trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: BlockHeader{
			PrevBlockHash: prevBlockHash,
			TimeStamp:     timeStamp,
			TransRoot:     root,
		},
		Coinbase: coinbase,
		Trans:    trans,
	}

	return b, nil
}

// NewGenesisBlock constructs the height zero block. It carries no
// ordinary transactions, only the coinbase producing the initial output.
func NewGenesisBlock(beneficiaryID string, reward uint64, timeStamp uint64) (Block, error) {
	coinbase := NewCoinbaseTx(0, beneficiaryID, reward)
	return NewBlock(signature.ZeroHash, timeStamp, coinbase, nil)
}

// Hash returns the unique hash for the block. The hash covers the header
// only, the merkle root commits the header to the transactions.
func (b Block) Hash() string {
	return signature.Hash(b.Header)
}

// ValidateTransRoot recomputes the merkle root over the block's
// transactions and checks it against the header.
func (b Block) ValidateTransRoot() error {
	root, err := transRoot(b.Coinbase, b.Trans)
	if err != nil {
		return err
	}

	if b.Header.TransRoot != root {
		return fmt.Errorf("trans root does not match transactions, got %s, exp %s", root, b.Header.TransRoot)
	}

	return nil
}

// transRoot builds the merkle tree over the coinbase and ordinary
// transactions and returns the hex encoded root.
func transRoot(coinbase Tx, trans []Tx) (string, error) {
	leaves := make([]Tx, 0, len(trans)+1)
	leaves = append(leaves, coinbase)
	leaves = append(leaves, trans...)

	tree, err := merkle.NewTree(leaves)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}
