package oracle

import (
	"context"
	"errors"

	"github.com/holiman/uint256"
)

// ErrUnavailable is returned when the underlying price source cannot be
// reached or returns a malformed answer.
var ErrUnavailable = errors.New("oracle unavailable")

// ExchangeRate is a single price observation: the native asset quoted in the
// reference currency, scaled by 10^Decimals, tagged with the source revision.
type ExchangeRate struct {
	Value    *uint256.Int
	Decimals uint8
	Version  uint64
}

// PriceOracle reads the current native/reference exchange rate. Implementations
// must re-fetch on every call; no caching of answers.
type PriceOracle interface {
	Read(ctx context.Context) (ExchangeRate, error)
	Version(ctx context.Context) (uint64, error)
}
