package mempool_test

import (
	"testing"

	"github.com/utxolabs/blockchain/foundation/blockchain/database"
	"github.com/utxolabs/blockchain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Mempool(t *testing.T) {
	t.Log("Given the need to manage the pool of pending transactions.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen inserting and removing transactions.", testID)
		{
			mp := mempool.New()

			txs := []database.Tx{
				database.NewTx(1, []database.UTXOID{{TxID: "a", Index: 0}}, []database.TxOutput{{Value: 10, OwnerID: "owner-a"}}),
				database.NewTx(2, []database.UTXOID{{TxID: "b", Index: 0}}, []database.TxOutput{{Value: 20, OwnerID: "owner-b"}}),
				database.NewTx(3, []database.UTXOID{{TxID: "c", Index: 1}}, []database.TxOutput{{Value: 30, OwnerID: "owner-c"}}),
			}

			for _, tx := range txs {
				mp.Upsert(tx)
			}

			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tTest %d:\tShould hold %d transactions, got %d.", failed, testID, len(txs), mp.Count())
			}
			t.Logf("\t%s\tTest %d:\tShould hold %d transactions.", success, testID, len(txs))

			if got := mp.Upsert(txs[0]); got != len(txs) {
				t.Errorf("\t%s\tTest %d:\tShould be idempotent by transaction identity, got count %d.", failed, testID, got)
			} else {
				t.Logf("\t%s\tTest %d:\tShould be idempotent by transaction identity.", success, testID)
			}

			mp.Delete(txs[1].ID())
			if mp.Count() != len(txs)-1 {
				t.Errorf("\t%s\tTest %d:\tShould remove a transaction by id, got count %d.", failed, testID, mp.Count())
			} else {
				t.Logf("\t%s\tTest %d:\tShould remove a transaction by id.", success, testID)
			}

			mp.Truncate()
			if mp.Count() != 0 {
				t.Errorf("\t%s\tTest %d:\tShould clear the pool, got count %d.", failed, testID, mp.Count())
			} else {
				t.Logf("\t%s\tTest %d:\tShould clear the pool.", success, testID)
			}
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen picking transactions for a block.", testID)
		{
			mp := mempool.New()

			for nonce := uint64(1); nonce <= 4; nonce++ {
				mp.Upsert(database.NewTx(nonce, []database.UTXOID{{TxID: "a", Index: uint32(nonce)}}, []database.TxOutput{{Value: nonce, OwnerID: "owner-a"}}))
			}

			if got := mp.PickBest(2); len(got) != 2 {
				t.Errorf("\t%s\tTest %d:\tShould pick 2 transactions, got %d.", failed, testID, len(got))
			} else {
				t.Logf("\t%s\tTest %d:\tShould pick 2 transactions.", success, testID)
			}

			if got := mp.PickBest(-1); len(got) != 4 {
				t.Errorf("\t%s\tTest %d:\tShould pick every transaction with -1, got %d.", failed, testID, len(got))
			} else {
				t.Logf("\t%s\tTest %d:\tShould pick every transaction with -1.", success, testID)
			}

			if got := mp.PickBest(10); len(got) != 4 {
				t.Errorf("\t%s\tTest %d:\tShould cap the pick at the pool size, got %d.", failed, testID, len(got))
			} else {
				t.Logf("\t%s\tTest %d:\tShould cap the pick at the pool size.", success, testID)
			}

			if mp.Count() != 4 {
				t.Errorf("\t%s\tTest %d:\tShould leave the pool untouched by picking, got count %d.", failed, testID, mp.Count())
			} else {
				t.Logf("\t%s\tTest %d:\tShould leave the pool untouched by picking.", success, testID)
			}
		}
	}
}
