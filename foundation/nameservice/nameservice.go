// Package nameservice reads a folder of ecdsa key files and creates a
// lookup from owner public key to a friendly name.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/utxolabs/blockchain/foundation/blockchain/signature"
)

// NameService maintains a map of owner ids for name lookup.
type NameService struct {
	owners map[string]string
}

// New constructs a name service from the key files under the root folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		owners: make(map[string]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != ".ecdsa" {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return err
		}

		ownerID := signature.PublicKeyString(privateKey)
		ns.owners[ownerID] = strings.TrimSuffix(path.Base(fileName), ".ecdsa")

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified owner id. Owners without a
// key file on this node keep their public key as their name.
func (ns *NameService) Lookup(ownerID string) string {
	name, exists := ns.owners[ownerID]
	if !exists {
		return ownerID
	}
	return name
}

// Copy returns a copy of the map of owner ids and names.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.owners))
	for ownerID, name := range ns.owners {
		cpy[ownerID] = name
	}
	return cpy
}
