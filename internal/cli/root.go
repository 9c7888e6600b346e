package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ccond",
	Short: "ccond - crypto-condition tooling",
	Long: `ccond creates, inspects and verifies crypto-conditions: portable
cryptographic commitments (cc: URIs) and the fulfillments (cf: URIs)
that satisfy them, as used for conditional payments and escrow on
interledger networks.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
}

// initConfig reads in config file and environment variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read config %s: %v\n", configFile, err)
			os.Exit(1)
		}
	}
	viper.SetEnvPrefix("CCOND")
	viper.AutomaticEnv()
}
