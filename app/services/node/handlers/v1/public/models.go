package public

import (
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
)

// submitTxInput represents one input of a submitted transaction.
type submitTxInput struct {
	TxID      string `json:"tx_id" validate:"required"`
	Index     uint32 `json:"index"`
	Signature string `json:"signature" validate:"required"`
}

// submitTxOutput represents one output of a submitted transaction.
type submitTxOutput struct {
	Value   uint64 `json:"value"`
	OwnerID string `json:"owner_id" validate:"required"`
}

// submitTx is what clients post to place a transaction in the pending pool.
type submitTx struct {
	Nonce   uint64           `json:"nonce"`
	Inputs  []submitTxInput  `json:"inputs" validate:"required,min=1,dive"`
	Outputs []submitTxOutput `json:"outputs" validate:"required,min=1,dive"`
}

// toDatabaseTx converts the request model into the database transaction.
func toDatabaseTx(tx submitTx) database.Tx {
	inputs := make([]database.TxInput, len(tx.Inputs))
	for i, in := range tx.Inputs {
		inputs[i] = database.TxInput{
			TxID:      in.TxID,
			Index:     in.Index,
			Signature: in.Signature,
		}
	}

	outputs := make([]database.TxOutput, len(tx.Outputs))
	for i, out := range tx.Outputs {
		outputs[i] = database.TxOutput{
			Value:   out.Value,
			OwnerID: out.OwnerID,
		}
	}

	return database.Tx{
		Nonce:   tx.Nonce,
		Inputs:  inputs,
		Outputs: outputs,
	}
}
