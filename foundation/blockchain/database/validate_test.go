package database_test

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_IsValidTx(t *testing.T) {
	ownerOneKey, ownerTwoKey, _, err := testKeys()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the test keys: %v", failed, err)
	}
	ownerOneID := signature.PublicKeyString(ownerOneKey)
	ownerTwoID := signature.PublicKeyString(ownerTwoKey)

	// Seed a ledger with one unspent output worth 100 owned by owner one.
	funding := database.NewCoinbaseTx(0, ownerOneID, 100)
	fundingID := database.UTXOID{TxID: funding.ID(), Index: 0}

	ledger := database.NewLedgerSet()
	ledger[fundingID] = funding.Outputs[0]

	type table struct {
		name  string
		tx    func() (database.Tx, error)
		valid bool
	}

	tt := []table{
		{
			name: "valid spend",
			tx: func() (database.Tx, error) {
				return signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 60, OwnerID: ownerTwoID}, {Value: 40, OwnerID: ownerOneID}}, ownerOneKey)
			},
			valid: true,
		},
		{
			name: "unknown input",
			tx: func() (database.Tx, error) {
				missing := database.UTXOID{TxID: signature.ZeroHash, Index: 0}
				return signedTx(1, []database.UTXOID{missing}, []database.TxOutput{{Value: 10, OwnerID: ownerTwoID}}, ownerOneKey)
			},
			valid: false,
		},
		{
			name: "duplicate input",
			tx: func() (database.Tx, error) {
				return signedTx(1, []database.UTXOID{fundingID, fundingID}, []database.TxOutput{{Value: 150, OwnerID: ownerTwoID}}, ownerOneKey)
			},
			valid: false,
		},
		{
			name: "wrong signer",
			tx: func() (database.Tx, error) {
				return signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 50, OwnerID: ownerTwoID}}, ownerTwoKey)
			},
			valid: false,
		},
		{
			name: "missing signature",
			tx: func() (database.Tx, error) {
				return database.NewTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 50, OwnerID: ownerTwoID}}), nil
			},
			valid: false,
		},
		{
			name: "outputs exceed inputs",
			tx: func() (database.Tx, error) {
				return signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 150, OwnerID: ownerTwoID}}, ownerOneKey)
			},
			valid: false,
		},
		{
			name: "surplus left as fee",
			tx: func() (database.Tx, error) {
				return signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 90, OwnerID: ownerTwoID}}, ownerOneKey)
			},
			valid: true,
		},
	}

	t.Log("Given the need to validate single transactions against a ledger.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s transaction.", testID, tst.name)
			{
				f := func(t *testing.T) {
					tx, err := tst.tx()
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct the transaction: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to construct the transaction.", success, testID)

					if got := database.IsValidTx(tx, ledger); got != tst.valid {
						t.Fatalf("\t%s\tTest %d:\tShould report validity %v, got %v.", failed, testID, tst.valid, got)
					}
					t.Logf("\t%s\tTest %d:\tShould report validity %v.", success, testID, tst.valid)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_CommitBatchOrdering(t *testing.T) {
	ownerOneKey, ownerTwoKey, _, err := testKeys()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the test keys: %v", failed, err)
	}
	ownerOneID := signature.PublicKeyString(ownerOneKey)
	ownerTwoID := signature.PublicKeyString(ownerTwoKey)

	funding := database.NewCoinbaseTx(0, ownerOneID, 100)
	fundingID := database.UTXOID{TxID: funding.ID(), Index: 0}

	ledger := database.NewLedgerSet()
	ledger[fundingID] = funding.Outputs[0]

	t.Log("Given the need to commit a batch against an evolving ledger.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a transaction spends an output produced earlier in the batch.", testID)
		{
			txA, err := signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 100, OwnerID: ownerTwoID}}, ownerOneKey)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to sign transaction A: %v", failed, testID, err)
			}

			txB, err := signedTx(2, []database.UTXOID{{TxID: txA.ID(), Index: 0}}, []database.TxOutput{{Value: 100, OwnerID: ownerOneID}}, ownerTwoKey)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to sign transaction B: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to sign the chained transactions.", success, testID)

			committed, next := database.CommitBatch([]database.Tx{txA, txB}, ledger)
			if len(committed) != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould commit both when the producer runs first, got %d.", failed, testID, len(committed))
			}
			t.Logf("\t%s\tTest %d:\tShould commit both when the producer runs first.", success, testID)

			if next.Balance(ownerOneID) != 100 {
				t.Errorf("\t%s\tTest %d:\tShould leave the value with owner one, got %d.", failed, testID, next.Balance(ownerOneID))
			} else {
				t.Logf("\t%s\tTest %d:\tShould leave the value with owner one.", success, testID)
			}

			committed, _ = database.CommitBatch([]database.Tx{txB, txA}, ledger)
			if len(committed) != 1 || !committed[0].Equals(txA) {
				t.Fatalf("\t%s\tTest %d:\tShould drop the consumer when it runs before the producer.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould drop the consumer when it runs before the producer.", success, testID)
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen two transactions spend the same output.", testID)
		{
			txA, err := signedTx(1, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 100, OwnerID: ownerTwoID}}, ownerOneKey)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to sign transaction A: %v", failed, testID, err)
			}

			txB, err := signedTx(2, []database.UTXOID{fundingID}, []database.TxOutput{{Value: 90, OwnerID: ownerTwoID}}, ownerOneKey)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to sign transaction B: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to sign the conflicting transactions.", success, testID)

			committed, next := database.CommitBatch([]database.Tx{txA, txB}, ledger)
			if len(committed) != 1 || !committed[0].Equals(txA) {
				t.Fatalf("\t%s\tTest %d:\tShould commit only the first spender.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould commit only the first spender.", success, testID)

			if next.Balance(ownerTwoID) != 100 {
				t.Errorf("\t%s\tTest %d:\tShould reflect only the first spend, got balance %d.", failed, testID, next.Balance(ownerTwoID))
			} else {
				t.Logf("\t%s\tTest %d:\tShould reflect only the first spend.", success, testID)
			}

			if _, exists := ledger[fundingID]; !exists {
				t.Errorf("\t%s\tTest %d:\tShould leave the input ledger untouched.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould leave the input ledger untouched.", success, testID)
			}
		}
	}
}

// =============================================================================

func testKeys() (*ecdsa.PrivateKey, *ecdsa.PrivateKey, *ecdsa.PrivateKey, error) {
	ownerOneKey, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
	if err != nil {
		return nil, nil, nil, err
	}

	ownerTwoKey, err := crypto.HexToECDSA("9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93")
	if err != nil {
		return nil, nil, nil, err
	}

	minerKey, err := crypto.HexToECDSA("aeaf8bb1b4f52b98f7ae0bc847b0b44bcd5900ad8f0e0871d25263e0f1d73b49")
	if err != nil {
		return nil, nil, nil, err
	}

	return ownerOneKey, ownerTwoKey, minerKey, nil
}

func signedTx(nonce uint64, spends []database.UTXOID, outputs []database.TxOutput, privateKey *ecdsa.PrivateKey) (database.Tx, error) {
	tx := database.NewTx(nonce, spends, outputs)
	for i := range tx.Inputs {
		if err := tx.SignInput(i, privateKey); err != nil {
			return database.Tx{}, err
		}
	}

	return tx, nil
}
