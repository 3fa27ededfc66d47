package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance and unspent outputs of the account",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

// ownerUTXOs is the node's response for the owner utxos query.
type ownerUTXOs struct {
	OwnerID string             `json:"owner_id"`
	Balance uint64             `json:"balance"`
	UTXOs   database.LedgerSet `json:"utxos"`
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	utxos, err := queryOwnerUTXOs(signature.PublicKeyString(privateKey))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("owner id:", utxos.OwnerID)
	fmt.Println("balance :", utxos.Balance)
	for id, out := range utxos.UTXOs {
		fmt.Printf("utxo    : %s value[%d]\n", id, out.Value)
	}
}

func queryOwnerUTXOs(ownerID string) (ownerUTXOs, error) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/owners/%s/utxos", url, ownerID))
	if err != nil {
		return ownerUTXOs{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ownerUTXOs{}, fmt.Errorf("node returned status %s", resp.Status)
	}

	var utxos ownerUTXOs
	if err := json.NewDecoder(resp.Body).Decode(&utxos); err != nil {
		return ownerUTXOs{}, err
	}

	return utxos, nil
}
