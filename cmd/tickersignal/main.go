package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	configPath string
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tickersignal",
		Short: "Technical-analysis signals for stock tickers",
		Long: `tickersignal computes SMA, EMA, RSI and MACD over daily price history
and turns the latest bar into a BUY, SELL or HOLD signal.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (defaults to CONFIG_PATH or configs/config.yaml)")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tickersignal version %s\n", version)
		},
	}
}
