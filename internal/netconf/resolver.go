package netconf

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/samuelsmith442/fundpool/internal/chain"
	"github.com/samuelsmith442/fundpool/internal/oracle"
)

// Known environments and their native/USD feed addresses.
var feedAddresses = map[string]common.Address{
	"mainnet": common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"),
	"sepolia": common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306"),
}

// LocalConfig seeds the shared aggregator for environments with no deployed
// feed.
type LocalConfig struct {
	InitialAnswer *uint256.Int
	Decimals      uint8
}

// Resolver maps an environment id to a price oracle handle. Resolution is
// idempotent: the same environment always yields the same handle, and local
// environments share one lazily created aggregator.
type Resolver struct {
	rpcURL       string
	feedOverride common.Address
	local        LocalConfig

	mu      sync.Mutex
	handles map[string]oracle.PriceOracle
	clients []*chain.Client
}

// NewResolver builds a resolver. feedOverride, when nonzero, replaces the
// registry address for any remote environment.
func NewResolver(rpcURL string, feedOverride common.Address, local LocalConfig) *Resolver {
	return &Resolver{
		rpcURL:       rpcURL,
		feedOverride: feedOverride,
		local:        local,
		handles:      make(map[string]oracle.PriceOracle),
	}
}

// Resolve returns the oracle handle for the environment, creating it on first
// use.
func (r *Resolver) Resolve(ctx context.Context, environment string) (oracle.PriceOracle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.handles[environment]; ok {
		return handle, nil
	}

	handle, err := r.build(ctx, environment)
	if err != nil {
		return nil, err
	}
	r.handles[environment] = handle
	return handle, nil
}

// Close releases any chain clients opened during resolution.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, client := range r.clients {
		client.Close()
	}
	r.clients = nil
}

func (r *Resolver) build(ctx context.Context, environment string) (oracle.PriceOracle, error) {
	if environment == "local" {
		if r.local.InitialAnswer == nil {
			return nil, fmt.Errorf("local environment requires an initial answer")
		}
		return oracle.NewStaticAggregator(r.local.InitialAnswer, r.local.Decimals), nil
	}

	address, ok := feedAddresses[environment]
	if !ok && r.feedOverride == (common.Address{}) {
		return nil, fmt.Errorf("unknown environment %q and no feed override", environment)
	}
	if r.feedOverride != (common.Address{}) {
		address = r.feedOverride
	}

	if r.rpcURL == "" {
		return nil, fmt.Errorf("environment %q requires an rpc url", environment)
	}
	client, err := chain.NewClient(ctx, r.rpcURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	r.clients = append(r.clients, client)

	return oracle.NewFeedAdapter(client, address), nil
}
