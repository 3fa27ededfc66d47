package main

import "github.com/utxolabs/blockchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
