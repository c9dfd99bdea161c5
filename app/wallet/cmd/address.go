package cmd

import (
	"fmt"
	"log"

	"github.com/minichain/minichain/foundation/blockchain/identity"
	"github.com/spf13/cobra"
)

// addressCmd represents the address command
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the public identifier for the specified wallet",
	Run: func(cmd *cobra.Command, args []string) {
		idn, err := identity.Load(getAccountLabel(), getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(idn.ID())
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
