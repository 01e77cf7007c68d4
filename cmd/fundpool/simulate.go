package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samuelsmith442/fundpool/internal/bank"
	"github.com/samuelsmith442/fundpool/internal/config"
	"github.com/samuelsmith442/fundpool/internal/fund"
	"github.com/samuelsmith442/fundpool/internal/journal"
	"github.com/samuelsmith442/fundpool/internal/journal/postgres"
	"github.com/samuelsmith442/fundpool/internal/model"
	"github.com/samuelsmith442/fundpool/internal/netconf"
)

// defaultOwner is used when no owner address is configured.
const defaultOwner = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func runSimulate(cmd *cobra.Command, _ []string) error {
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

	if cfg.Funders <= 0 {
		return fmt.Errorf("funders must be greater than zero")
	}
	amount, err := uint256.FromDecimal(cfg.Amount)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	ownerHex := cfg.Owner
	if ownerHex == "" {
		ownerHex = defaultOwner
	}
	owner := common.HexToAddress(ownerHex)

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

	sinks := journal.Multi{journal.NewJsonlJournal(cfg.JournalPath)}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		sinks = append(sinks, store)
	}

	minimumUSD := new(uint256.Int).Mul(
		uint256.NewInt(cfg.MinimumUSD),
		new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18)),
	)

	accounts := bank.NewBank()
	pool := fund.NewPool(owner, minimumUSD, priceOracle, accounts)

	logger.Info("simulation start",
		zap.String("environment", cfg.Environment),
		zap.String("owner", owner.Hex()),
		zap.String("minimum_usd", minimumUSD.Dec()),
		zap.Int("funders", cfg.Funders),
		zap.String("amount_wei", amount.Dec()),
	)

	events := make([]model.LedgerEvent, 0, cfg.Funders)
	for i := 0; i < cfg.Funders; i++ {
		funder := common.BigToAddress(big.NewInt(int64(i + 1)))
		if err := accounts.Credit(funder, amount); err != nil {
			return fmt.Errorf("seed funder %s: %w", funder.Hex(), err)
		}
		if err := accounts.Debit(funder, amount); err != nil {
			return fmt.Errorf("debit funder %s: %w", funder.Hex(), err)
		}
		if err := pool.Deposit(ctx, funder, amount); err != nil {
			return fmt.Errorf("deposit from %s: %w", funder.Hex(), err)
		}
		events = append(events, ledgerEvent(model.EventDeposit, funder, amount, pool))
	}

	if err := sinks.Record(events); err != nil {
		return fmt.Errorf("journal deposits: %w", err)
	}

	drained := pool.Balance()
	if err := pool.CheaperWithdraw(owner); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}

	if err := sinks.Record([]model.LedgerEvent{ledgerEvent(model.EventWithdraw, owner, drained, pool)}); err != nil {
		return fmt.Errorf("journal withdrawal: %w", err)
	}

	logger.Info("simulation complete",
		zap.String("drained_wei", drained.Dec()),
		zap.String("owner_balance_wei", accounts.BalanceOf(owner).Dec()),
		zap.Uint64("funder_count", pool.FunderCount()),
		zap.String("pool_balance_wei", pool.Balance().Dec()),
	)

	return nil
}

func ledgerEvent(kind string, account common.Address, amount *uint256.Int, pool *fund.Pool) model.LedgerEvent {
	return model.LedgerEvent{
		Kind:        kind,
		Account:     account.Hex(),
		Amount:      amount.Dec(),
		PoolBalance: pool.Balance().Dec(),
		FunderCount: pool.FunderCount(),
		RecordedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
}
