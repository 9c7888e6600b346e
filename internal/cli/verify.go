package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	cc "github.com/LeJamon/go-crypto-conditions"
)

var (
	verifyMessage    string
	verifyMessageHex string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <fulfillment-uri> <condition-uri>",
	Short: "Verify a fulfillment against a condition",
	Long: `Verify that a cf: fulfillment URI satisfies a cc: condition URI.
The fulfillment must derive exactly the given condition, stay within its
committed maximum size and validate against the message (empty unless
--message or --message-hex is given).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, err := messageBytes()
		if err != nil {
			return err
		}
		if err := cc.ValidateFulfillment(args[0], args[1], message); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

// messageBytes resolves the message flags; --message-hex wins when both
// are given.
func messageBytes() ([]byte, error) {
	if verifyMessageHex != "" {
		b, err := hex.DecodeString(verifyMessageHex)
		if err != nil {
			return nil, fmt.Errorf("invalid --message-hex: %w", err)
		}
		return b, nil
	}
	return []byte(verifyMessage), nil
}

func init() {
	verifyCmd.Flags().StringVar(&verifyMessage, "message", "", "message the fulfillment signs")
	verifyCmd.Flags().StringVar(&verifyMessageHex, "message-hex", "", "message in hex")
	rootCmd.AddCommand(verifyCmd)
}
