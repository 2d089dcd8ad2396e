package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/costseg/quote-engine/internal/config"
	"github.com/costseg/quote-engine/internal/domain"
	"github.com/costseg/quote-engine/internal/output"
)

func newWatchCmd() *cobra.Command {
	var metricsAddr, format string
	cmd := &cobra.Command{
		Use:   "watch [input-file]",
		Short: "Re-price a quote whenever the calculator config file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if cliCtx.Options.ConfigPath == "" {
				return errors.New("watch requires --config")
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return output.UnsupportedFormatError(format)
			}
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := &watchSession{cli: cliCtx, input: *input, formatter: f, out: cmd.OutOrStdout()}
			if err := s.reprice(ctx); err != nil {
				return err
			}

			w, err := config.Watch(cliCtx.Options.ConfigPath,
				func(cfg domain.CalculatorConfig) { s.reload(ctx, cfg) },
				func(err error) { cliCtx.Logger.Warnw("config reload failed", "error", err) },
			)
			if err != nil {
				return err
			}
			defer w.Stop()

			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: cliCtx.Metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						cliCtx.Logger.Errorw("metrics server stopped", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				cliCtx.Logger.Infow("serving metrics", "addr", metricsAddr)
			}

			cliCtx.Logger.Infow("watching config", "path", cliCtx.Options.ConfigPath)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format for each re-priced quote")
	return cmd
}

// watchSession re-prices one input against each configuration the watcher delivers.
type watchSession struct {
	cli       *CLIContext
	input     domain.QuoteInput
	formatter output.Formatter
	out       io.Writer
	mu        sync.Mutex
}

func (s *watchSession) reload(ctx context.Context, cfg domain.CalculatorConfig) {
	if s.cli.Options.DatasetPath != "" {
		tables, err := config.LoadLookupDataset(s.cli.Options.DatasetPath)
		if err != nil {
			s.cli.Logger.Warnw("dataset reload failed", "error", err)
			return
		}
		cfg = domain.ConfigPatch{LookupTables: &tables}.Apply(cfg)
	}
	if err := s.cli.Calculator.ReplaceConfig(cfg); err != nil {
		s.cli.Logger.Warnw("reloaded config rejected", "error", err)
		return
	}
	if err := s.reprice(ctx); err != nil {
		s.cli.Logger.Errorw("re-pricing failed", "error", err)
	}
}

func (s *watchSession) reprice(ctx context.Context) error {
	result, err := s.cli.Calculator.Calculate(ctx, s.input)
	if err != nil {
		return err
	}
	data, err := s.formatter.Format(result)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "--- %s ---\n", result.GeneratedAt.Format(time.RFC3339))
	_, err = s.out.Write(data)
	return err
}
