package accounttool

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an account metadata document",
	Long: `Validate an account metadata document. The document is decoded against the
account model; schema version, required fields, enum values, and the
account/container invariants are all checked.

Examples:
  # Validate a document
  accounttool validate account.json

  # Validate with machine-readable output
  accounttool validate account.json -j`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	codec, err := loadCodec()
	if err != nil {
		return err
	}

	a, derr := codec.DecodeAccount(data)
	if derr != nil {
		if jsonOutput {
			printJSON(map[string]string{
				"file":  args[0],
				"valid": "false",
				"error": derr.ErrorAll(),
			})
			return ErrAlreadyHandled
		}
		errorLabel.Printf("INVALID %s\n", args[0])
		fmt.Printf("  %s\n", derr.ErrorAll())
		return ErrAlreadyHandled
	}

	if jsonOutput {
		printJSON(map[string]any{
			"file":       args[0],
			"valid":      true,
			"account":    a.Name(),
			"accountId":  a.ID(),
			"status":     string(a.Status()),
			"containers": len(a.AllContainers()),
		})
		return nil
	}
	okLabel.Printf("OK %s\n", args[0])
	fmt.Printf("  %s name=%s status=%s containers=%d\n", a, a.Name(), a.Status(), len(a.AllContainers()))
	return nil
}
