package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samuelsmith442/fundpool/internal/config"
	"github.com/samuelsmith442/fundpool/internal/fund"
	"github.com/samuelsmith442/fundpool/internal/netconf"
)

func runPrice(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver := netconf.NewResolver(cfg.RPCURL, common.HexToAddress(cfg.FeedAddress), netconf.LocalConfig{
		InitialAnswer: uint256.NewInt(cfg.MockAnswer),
		Decimals:      cfg.MockDecimals,
	})
	defer resolver.Close()

	priceOracle, err := resolver.Resolve(ctx, cfg.Environment)
	if err != nil {
		return fmt.Errorf("resolve oracle: %w", err)
	}

	rate, err := priceOracle.Read(ctx)
	if err != nil {
		return fmt.Errorf("read price: %w", err)
	}

	logger.Info("price feed",
		zap.String("environment", cfg.Environment),
		zap.String("rate", rate.Value.Dec()),
		zap.Uint8("decimals", rate.Decimals),
		zap.Uint64("version", rate.Version),
	)

	if cfg.Amount != "" {
		amount, err := uint256.FromDecimal(cfg.Amount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		usdValue, err := fund.ConvertToUSD(amount, rate)
		if err != nil {
			return err
		}
		logger.Info("converted",
			zap.String("native_wei", amount.Dec()),
			zap.String("usd_value", usdValue.Dec()),
		)
	}

	return nil
}
