package cmd

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

var (
	to    string
	value uint64
	nonce uint64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send value to another owner",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		sendWithDetails(privateKey)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Owner id receiving the value.")
	sendCmd.Flags().Uint64VarP(&value, "value", "v", 0, "Value to send.")
	sendCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Unique id for the transaction.")
}

func sendWithDetails(privateKey *ecdsa.PrivateKey) {
	ownerID := signature.PublicKeyString(privateKey)

	utxos, err := queryOwnerUTXOs(ownerID)
	if err != nil {
		log.Fatal(err)
	}

	// Select unspent outputs until the requested value is covered.
	var spends []database.UTXOID
	var total uint64
	for id, out := range utxos.UTXOs {
		spends = append(spends, id)
		total += out.Value
		if total >= value {
			break
		}
	}

	if total < value {
		log.Fatalf("insufficient funds, have %d, need %d", total, value)
	}

	// Send the value to the receiver and any change back to ourselves.
	outputs := []database.TxOutput{
		{Value: value, OwnerID: to},
	}
	if change := total - value; change > 0 {
		outputs = append(outputs, database.TxOutput{Value: change, OwnerID: ownerID})
	}

	tx := database.NewTx(nonce, spends, outputs)
	for i := range tx.Inputs {
		if err := tx.SignInput(i, privateKey); err != nil {
			log.Fatal(err)
		}
	}

	data, err := json.Marshal(tx)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	fmt.Println("tx id:", tx.ID())
	fmt.Println("node :", resp.Status)
}
