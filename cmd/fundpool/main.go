package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "fundpool",
		Short:        "Oracle-gated contribution pool",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Read the environment's price feed",
		RunE:  runPrice,
	}

	priceCmd.Flags().String("rpc", "", "RPC URL")
	priceCmd.Flags().String("environment", "local", "deployment environment (mainnet, sepolia, local)")
	priceCmd.Flags().String("feed", "", "feed address override")
	priceCmd.Flags().Uint64("mock-answer", 200000000000, "local aggregator answer")
	priceCmd.Flags().Uint("mock-decimals", 8, "local aggregator decimals")
	priceCmd.Flags().String("amount", "", "optional native amount (wei) to convert")
	priceCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(priceCmd)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a funding session and withdrawal against the resolved oracle",
		RunE:  runSimulate,
	}

	simulateCmd.Flags().String("rpc", "", "RPC URL")
	simulateCmd.Flags().String("environment", "local", "deployment environment (mainnet, sepolia, local)")
	simulateCmd.Flags().String("feed", "", "feed address override")
	simulateCmd.Flags().String("owner", "", "pool owner address")
	simulateCmd.Flags().Uint64("minimum-usd", 5, "minimum contribution in whole USD")
	simulateCmd.Flags().Uint64("mock-answer", 200000000000, "local aggregator answer")
	simulateCmd.Flags().Uint("mock-decimals", 8, "local aggregator decimals")
	simulateCmd.Flags().Int("funders", 10, "number of funders")
	simulateCmd.Flags().String("amount", "100000000000000000", "deposit per funder (wei)")
	simulateCmd.Flags().String("journal", "./data/ledger_events.jsonl", "journal JSONL path")
	simulateCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the journal")
	simulateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(simulateCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
