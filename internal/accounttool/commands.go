// Package accounttool implements the accounttool command line interface for
// inspecting and rewriting serialized account metadata documents.
package accounttool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nimbusworks/nimbus/internal/accountsrv/account"
	"github.com/nimbusworks/nimbus/internal/accountsrv/config"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "accounttool [command] [flags]",
	Short: "accounttool - inspect and rewrite account metadata documents",
	Long: `accounttool works on serialized account metadata documents. It validates
documents against the account model, rewrites them at a different container
schema version, and edits account or container status in place.

Examples:
  # Validate a document
  accounttool validate account.json

  # Rewrite a document at the configured container schema version
  accounttool upgrade account.json -o upgraded.json

  # Deactivate a container
  accounttool set-status account.json INACTIVE --container 5`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(setStatusCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			printJSON(map[string]string{"error": err.Error()})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadCodec resolves the codec from the optional config file. Without a
// config file the defaults apply.
func loadCodec() (account.Codec, error) {
	if configFile != "" {
		if err := config.LoadConfig(configFile); err != nil {
			return account.Codec{}, fmt.Errorf("loading config file: %w", err)
		}
	}
	return config.Config().Codec()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
