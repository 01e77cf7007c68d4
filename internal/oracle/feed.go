package oracle

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/samuelsmith442/fundpool/internal/chain"
)

const aggregatorABIJSON = `[
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"version","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"latestRoundData","outputs":[{"internalType":"uint80","name":"roundId","type":"uint80"},{"internalType":"int256","name":"answer","type":"int256"},{"internalType":"uint256","name":"startedAt","type":"uint256"},{"internalType":"uint256","name":"updatedAt","type":"uint256"},{"internalType":"uint80","name":"answeredInRound","type":"uint80"}],"stateMutability":"view","type":"function"}
]`

var (
	aggregatorABIOnce sync.Once
	aggregatorABIVal  abi.ABI
	aggregatorABIErr  error
)

func aggregatorABI() (abi.ABI, error) {
	aggregatorABIOnce.Do(func() {
		aggregatorABIVal, aggregatorABIErr = abi.JSON(strings.NewReader(aggregatorABIJSON))
	})
	return aggregatorABIVal, aggregatorABIErr
}

// FeedAdapter reads a price-feed aggregator contract over RPC. It satisfies
// PriceOracle; every Read issues fresh eth_calls.
type FeedAdapter struct {
	client  *chain.Client
	address common.Address
}

// NewFeedAdapter binds an adapter to a deployed aggregator address.
func NewFeedAdapter(client *chain.Client, address common.Address) *FeedAdapter {
	return &FeedAdapter{client: client, address: address}
}

// Address returns the bound aggregator address.
func (f *FeedAdapter) Address() common.Address {
	return f.address
}

// Read fetches latestRoundData and decimals from the aggregator.
func (f *FeedAdapter) Read(ctx context.Context) (ExchangeRate, error) {
	feedABI, err := aggregatorABI()
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parse aggregator abi: %w", err)
	}

	values, err := f.call(ctx, feedABI, "latestRoundData")
	if err != nil {
		return ExchangeRate{}, err
	}
	if len(values) != 5 {
		return ExchangeRate{}, fmt.Errorf("%w: latestRoundData returned %d values", ErrUnavailable, len(values))
	}
	answer, ok := values[1].(*big.Int)
	if !ok || answer == nil {
		return ExchangeRate{}, fmt.Errorf("%w: malformed answer", ErrUnavailable)
	}
	if answer.Sign() < 0 {
		return ExchangeRate{}, fmt.Errorf("%w: negative answer %s", ErrUnavailable, answer)
	}
	value, overflow := uint256.FromBig(answer)
	if overflow {
		return ExchangeRate{}, fmt.Errorf("%w: answer out of range", ErrUnavailable)
	}

	values, err = f.call(ctx, feedABI, "decimals")
	if err != nil {
		return ExchangeRate{}, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return ExchangeRate{}, fmt.Errorf("%w: malformed decimals", ErrUnavailable)
	}

	version, err := f.Version(ctx)
	if err != nil {
		return ExchangeRate{}, err
	}

	return ExchangeRate{Value: value, Decimals: decimals, Version: version}, nil
}

// Version fetches the aggregator interface version.
func (f *FeedAdapter) Version(ctx context.Context) (uint64, error) {
	feedABI, err := aggregatorABI()
	if err != nil {
		return 0, fmt.Errorf("parse aggregator abi: %w", err)
	}

	values, err := f.call(ctx, feedABI, "version")
	if err != nil {
		return 0, err
	}
	version, ok := values[0].(*big.Int)
	if !ok || version == nil {
		return 0, fmt.Errorf("%w: malformed version", ErrUnavailable)
	}
	if !version.IsUint64() {
		return 0, fmt.Errorf("%w: version out of range", ErrUnavailable)
	}
	return version.Uint64(), nil
}

func (f *FeedAdapter) call(ctx context.Context, feedABI abi.ABI, method string) ([]interface{}, error) {
	input, err := feedABI.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	output, err := f.client.CallContract(ctx, ethereum.CallMsg{To: &f.address, Data: input})
	if err != nil {
		return nil, fmt.Errorf("%w: call %s: %v", ErrUnavailable, method, err)
	}
	if len(output) == 0 {
		return nil, fmt.Errorf("%w: empty response for %s", ErrUnavailable, method)
	}

	values, err := feedABI.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("%w: unpack %s: %v", ErrUnavailable, method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty result for %s", ErrUnavailable, method)
	}
	return values, nil
}
