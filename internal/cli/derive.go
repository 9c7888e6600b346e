package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cc "github.com/LeJamon/go-crypto-conditions"
)

var deriveCmd = &cobra.Command{
	Use:   "derive <fulfillment-uri>",
	Short: "Derive the condition a fulfillment satisfies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conditionURI, err := cc.FulfillmentToCondition(args[0])
		if err != nil {
			return err
		}
		fmt.Println(conditionURI)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}
