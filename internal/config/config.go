package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	Environment  string
	FeedAddress  string
	Owner        string
	MinimumUSD   uint64
	MockAnswer   uint64
	MockDecimals uint8
	Funders      int
	Amount       string
	JournalPath  string
	PGDSN        string
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FUNDPOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "local")
	v.SetDefault("minimum-usd", uint64(5))
	v.SetDefault("mock-answer", uint64(200000000000))
	v.SetDefault("mock-decimals", 8)
	v.SetDefault("funders", 10)
	v.SetDefault("amount", "100000000000000000")
	v.SetDefault("journal", "./data/ledger_events.jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       v.GetString("rpc"),
		Environment:  v.GetString("environment"),
		FeedAddress:  v.GetString("feed"),
		Owner:        v.GetString("owner"),
		MinimumUSD:   v.GetUint64("minimum-usd"),
		MockAnswer:   v.GetUint64("mock-answer"),
		MockDecimals: uint8(v.GetUint("mock-decimals")),
		Funders:      v.GetInt("funders"),
		Amount:       v.GetString("amount"),
		JournalPath:  v.GetString("journal"),
		PGDSN:        v.GetString("pg-dsn"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
