// Package cli implements the quotecalc command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/costseg/quote-engine/internal/calculation"
	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/internal/logging"
	"github.com/costseg/quote-engine/internal/metrics"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath  string
	DatasetPath string
	LogLevel    string
	LogFormat   string
	LogFile     string
	MetricsFile string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Options    *RootOptions
	Config     domain.CalculatorConfig
	Calculator *calculation.QuoteCalculator
	Logger     *zap.SugaredLogger
	Metrics    *metrics.Recorder
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "quotecalc",
		Short:   "Cost segregation quote pricing and depreciation projections",
		Long:    "quotecalc prices cost segregation studies from property details and projects\nthe depreciation and tax savings the study is expected to produce.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPostRun(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "calculator config file (default: built-in defaults)")
	pf.StringVar(&opts.DatasetPath, "dataset", "", "lookup table dataset file replacing the configured tables")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.LogFormat, "log-format", "console", "log format (console, json)")
	pf.StringVar(&opts.LogFile, "log-file", "", "write logs to this file instead of stderr")
	pf.StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	cmd.AddCommand(
		newCalculateCmd(),
		newFactorsCmd(),
		newConfigCmd(),
		newExampleCmd(),
		newWatchCmd(),
	)
	return cmd
}

// persistentPreRun loads configuration, builds the logger, metrics and
// calculator, then stores the CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	zl, err := logging.New(logging.Config{Level: opts.LogLevel, Format: opts.LogFormat, OutputFile: opts.LogFile})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logger := zl.Sugar()

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	rec, err := metrics.NewRecorder()
	if err != nil {
		return fmt.Errorf("metrics initialization failed: %w", err)
	}

	calc, err := calculation.NewQuoteCalculator(cfg,
		calculation.WithLogger(logger),
		calculation.WithRecorder(rec),
	)
	if err != nil {
		return fmt.Errorf("calculator initialization failed: %w", err)
	}
	logger.Debugw("calculator ready", "config", opts.ConfigPath, "dataset", opts.DatasetPath)

	cliCtx := &CLIContext{Options: opts, Config: cfg, Calculator: calc, Logger: logger, Metrics: rec}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

func persistentPostRun(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil
	}
	_ = cliCtx.Logger.Sync()
	if cliCtx.Options.MetricsFile != "" {
		if err := cliCtx.Metrics.WriteToTextfile(cliCtx.Options.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// loadConfig reads the calculator config and overlays the dataset's tables.
func loadConfig(opts *RootOptions) (domain.CalculatorConfig, error) {
	cfg, err := config.LoadCalculatorConfig(opts.ConfigPath)
	if err != nil {
		return domain.CalculatorConfig{}, err
	}
	if opts.DatasetPath == "" {
		return cfg, nil
	}
	tables, err := config.LoadLookupDataset(opts.DatasetPath)
	if err != nil {
		return domain.CalculatorConfig{}, err
	}
	cfg = domain.ConfigPatch{LookupTables: &tables}.Apply(cfg)
	return cfg, cfg.Validate()
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New("CLI context not initialized")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// PrintError renders an error, listing field messages for invalid input.
func PrintError(w io.Writer, err error) {
	var verr *calculation.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(w, "❌ Quote input is invalid:")
		for _, e := range verr.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
