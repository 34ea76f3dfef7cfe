// Package cli provides the command-line interface for sigconform.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sigconform/sigconform/internal/errors"
	"github.com/sigconform/sigconform/internal/keys"
)

// AddKeysCommand adds the keys command to the root command.
func AddKeysCommand(root *cobra.Command) {
	root.AddCommand(newKeysCmd())
}

func newKeysCmd() *cobra.Command {
	var keysPath string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the key material in the catalog",
		Long: `Display the key catalog the suite draws signing keys from. Key references
are file paths handed to the signer; sigconform never reads the key bytes.

Examples:
  sigconform keys
  sigconform keys --format json
  sigconform keys --keys keys.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKeys(cmd.Context(), cmd, keysPath, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&keysPath, "keys", "", "YAML key catalog (default: built-in catalog)")

	return cmd
}

func runKeys(ctx context.Context, cmd *cobra.Command, keysPath string, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	outputFormat := cmd.Flag("format").Value.String()

	catalog := keys.Default()
	if keysPath != "" {
		var err error
		catalog, err = keys.LoadFile(keysPath)
		if err != nil {
			return errors.Wrapf(err, "loading key catalog %s", keysPath)
		}
	}

	if outputFormat == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalogRows(catalog))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY ID\tTYPE\tREFERENCE")
	for _, keyType := range catalog.AllPrivateKeyTypes() {
		for _, key := range catalog.KeysOfType(keyType) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", key.KeyID, key.KeyType, key.Reference)
		}
	}
	return tw.Flush()
}

// keyRow is the JSON shape of one catalog entry in list output.
type keyRow struct {
	KeyID     string `json:"key_id"`
	KeyType   string `json:"key_type"`
	Reference string `json:"reference"`
}

func catalogRows(catalog *keys.Catalog) []keyRow {
	rows := make([]keyRow, 0)
	for _, keyType := range catalog.AllPrivateKeyTypes() {
		for _, key := range catalog.KeysOfType(keyType) {
			rows = append(rows, keyRow{KeyID: key.KeyID, KeyType: key.KeyType, Reference: key.Reference})
		}
	}
	return rows
}
