package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/costseg/quote-engine/internal/output"
)

func newFactorsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Show the pricing factor lookup tables in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			tables := cliCtx.Calculator.GetAllFactors()
			var data []byte
			switch format {
			case "text", "":
				data = output.FormatLookupTables(tables)
			case "json":
				data, err = json.MarshalIndent(tables, "", "  ")
			case "yaml":
				data, err = yaml.Marshal(tables)
			default:
				return fmt.Errorf("unsupported factors format %q (text, json, yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}
