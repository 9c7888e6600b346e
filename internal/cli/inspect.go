package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	cc "github.com/LeJamon/go-crypto-conditions"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <condition-uri>",
	Short: "Decode the fields of a condition URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		condition, err := cc.ParseConditionURI(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("type:                   %d\n", condition.TypeID)
		fmt.Printf("feature bitmask:        %#x\n", condition.Bitmask)
		fmt.Printf("hash:                   %s\n", hex.EncodeToString(condition.Hash))
		fmt.Printf("max fulfillment length: %d\n", condition.MaxFulfillmentLength)
		if err := condition.Validate(); err != nil {
			fmt.Printf("supported:              no (%v)\n", err)
		} else {
			fmt.Printf("supported:              yes\n")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
