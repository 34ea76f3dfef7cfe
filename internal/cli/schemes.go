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
	"github.com/sigconform/sigconform/internal/registry"
	"github.com/sigconform/sigconform/internal/rules"
)

// AddSchemesCommand adds the schemes command to the root command.
func AddSchemesCommand(root *cobra.Command) {
	root.AddCommand(newSchemesCmd())
}

func newSchemesCmd() *cobra.Command {
	var registryPath string

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List the algorithm schemes in the registry",
		Long: `Display the algorithm scheme registry the suite runs against, with each
scheme's implied key family and deprecation status.

Examples:
  sigconform schemes
  sigconform schemes --format json
  sigconform schemes --registry registry.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchemes(cmd.Context(), cmd, registryPath, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "", "YAML scheme registry (default: built-in table)")

	return cmd
}

// schemeRow is the JSON shape of one registry entry in list output.
type schemeRow struct {
	Name       string `json:"name"`
	KeyFamily  string `json:"key_family,omitempty"`
	Deprecated bool   `json:"deprecated"`
}

func runSchemes(ctx context.Context, cmd *cobra.Command, registryPath string, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	outputFormat := cmd.Flag("format").Value.String()

	reg := registry.Default()
	if registryPath != "" {
		var err error
		reg, err = registry.LoadFile(registryPath)
		if err != nil {
			return errors.Wrapf(err, "loading scheme registry %s", registryPath)
		}
	}

	rows := make([]schemeRow, 0)
	for _, scheme := range reg.ListSchemes() {
		rows = append(rows, schemeRow{
			Name:       scheme.Name,
			KeyFamily:  rules.KeyFamily(scheme.Name),
			Deprecated: scheme.Deprecated,
		})
	}

	if outputFormat == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEME\tKEY FAMILY\tSTATUS")
	for _, row := range rows {
		family := row.KeyFamily
		if family == "" {
			family = "any"
		}
		status := "active"
		if row.Deprecated {
			status = "deprecated"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Name, family, status)
	}
	return tw.Flush()
}
