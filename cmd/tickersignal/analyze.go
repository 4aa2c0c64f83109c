package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"TickerSignal/internal/config"
	"TickerSignal/internal/model"
	"TickerSignal/internal/notifier"
)

func analyzeCmd() *cobra.Command {
	var (
		asJSON    bool
		smaWindow int
		tailRows  int
	)

	cmd := &cobra.Command{
		Use:   "analyze [symbol...]",
		Short: "Analyze symbols once and print the report",
		Example: `  tickersignal analyze AAPL
  tickersignal analyze AAPL MSFT --json
  tickersignal analyze --sma 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if smaWindow != 0 {
				cfg.Analysis.DecisionSMA = smaWindow
			}
			if tailRows != 0 {
				cfg.Analysis.TailRows = tailRows
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			symbols := cfg.DataSource.Symbols
			if len(args) > 0 {
				symbols = config.SplitSymbols(strings.Join(args, ","))
			}

			a := newApp(cfg)
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			var results []*model.Analysis
			var failed int
			for _, symbol := range symbols {
				res, err := a.collector.Analyze(ctx, symbol)
				if err != nil {
					log.Printf("[ERROR] analyze %s: %v", symbol, err)
					failed++
					continue
				}
				if err := a.recorder.RecordAnalysis(res); err != nil {
					log.Printf("[ERROR] record analysis %s: %v", symbol, err)
				}
				results = append(results, res)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					fmt.Fprintln(out, notifier.PlainText(notifier.FormatReport(res)))
					fmt.Fprintln(out)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d symbols failed", failed, len(symbols))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the structured analysis as JSON")
	cmd.Flags().IntVar(&smaWindow, "sma", 0, "Decision SMA window (20, 50 or 200)")
	cmd.Flags().IntVar(&tailRows, "tail", 0, "Number of recent rows to include")
	return cmd
}
