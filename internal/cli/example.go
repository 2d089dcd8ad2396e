package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const exampleQuote = `# Example quote input. Amounts are US dollars.
purchase_price: 2550000
zip_code: "85260"
sqft_building: 1500
acres_land: 0.78
property_type: Multi-Family
number_of_floors: 2
multiple_properties: 1
purchase_date: 2024-03-15
tax_year: 2024
year_built: 1998
capex: 50000
owner_name: Jane Investor
property_address: 123 Main St, Scottsdale, AZ 85260
product_type: RCGV
rush_order: false
`

func newExampleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example quote input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), exampleQuote)
				return err
			}
			if err := os.WriteFile(out, []byte(exampleQuote), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the example to this file")
	return cmd
}
