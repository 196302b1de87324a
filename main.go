package main

import "github.com/frahmantamala/restaurant-ledger/cmd"

func main() {
	cmd.Execute()
}
