// This program provides wallet tooling for generating and inspecting
// the keypairs that identify blockchain participants.
package main

import (
	"github.com/minichain/minichain/app/wallet/cmd"
)

func main() {
	cmd.Execute()
}
