package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/costseg/quote-engine/internal/calculation"
	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/internal/output"
)

type calculateOptions struct {
	format         string
	outputDir      string
	batch          bool
	bonusByTaxYear bool
}

func newCalculateCmd() *cobra.Command {
	opts := &calculateOptions{}
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Price a quote from a YAML or JSON input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runCalculate(cmd, cliCtx, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "console", "output format ("+joinNames()+", all)")
	f.StringVarP(&opts.outputDir, "output", "o", "", "write reports into this directory instead of stdout")
	f.BoolVar(&opts.batch, "batch", false, "input file holds a list of quotes under 'quotes:'")
	f.BoolVar(&opts.bonusByTaxYear, "bonus-by-tax-year", false, "use the bonus depreciation rate scheduled for each quote's tax year")
	return cmd
}

func joinNames() string { return strings.Join(output.AvailableFormatterNames(), ", ") }

func runCalculate(cmd *cobra.Command, cliCtx *CLIContext, path string, opts *calculateOptions) error {
	format := output.NormalizeFormatName(opts.format)
	if format != "all" && output.GetFormatterByName(format) == nil {
		return output.UnsupportedFormatError(opts.format)
	}
	if format == "all" && opts.outputDir == "" {
		return errors.New("format \"all\" requires --output")
	}

	parser := config.NewInputParser()
	var inputs []domain.QuoteInput
	if opts.batch {
		batch, err := parser.LoadBatchFromFile(path)
		if err != nil {
			return err
		}
		inputs = batch
	} else {
		input, err := parser.LoadFromFile(path)
		if err != nil {
			return err
		}
		inputs = []domain.QuoteInput{*input}
	}

	var results []*domain.QuoteResult
	var failed int
	for i, input := range inputs {
		var result *domain.QuoteResult
		var err error
		if opts.bonusByTaxYear {
			patch := taxYearBonusPatch(cliCtx.Calculator.GetConfig().Depreciation, input)
			result, err = cliCtx.Calculator.CalculateWith(cmd.Context(), input, patch)
		} else {
			result, err = cliCtx.Calculator.Calculate(cmd.Context(), input)
		}
		if err != nil {
			if !opts.batch {
				return err
			}
			failed++
			cliCtx.Logger.Errorw("quote failed", "index", i, "owner", input.OwnerName, "error", err)
			PrintError(cmd.ErrOrStderr(), fmt.Errorf("quote %d: %w", i+1, err))
			continue
		}
		cliCtx.Logger.Infow("quote calculated", "quote_id", result.QuoteID, "final_bid", result.FinalBid.String(), "model", result.WinningModel)
		results = append(results, result)
	}

	if err := emitResults(cmd, results, format, opts.outputDir); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d quotes failed", failed, len(inputs))
	}
	return nil
}

// taxYearBonusPatch sets the bonus rate scheduled for the quote's tax year;
// property acquired before the 2017 effective date gets none.
func taxYearBonusPatch(dep domain.DepreciationConfig, input domain.QuoteInput) domain.ConfigPatch {
	dep.BonusRate = calculation.BonusRateForTaxYear(input.TaxYear)
	if !calculation.QualifiesForBonus(input.PurchaseDate) {
		dep.BonusRate = decimal.Zero
	}
	return domain.ConfigPatch{Depreciation: &dep}
}

func emitResults(cmd *cobra.Command, results []*domain.QuoteResult, format, dir string) error {
	if dir != "" {
		for _, r := range results {
			files, err := output.GenerateReport(r, format, dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
			}
		}
		return nil
	}

	// One CSV header for a whole batch.
	if format == "csv" && len(results) > 1 {
		data, err := output.FormatSummaryRows(results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	f := output.GetFormatterByName(format)
	for _, r := range results {
		data, err := f.Format(r)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}
	return nil
}
