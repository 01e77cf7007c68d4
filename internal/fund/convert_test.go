package fund

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/samuelsmith442/fundpool/internal/oracle"
)

func rate(value uint64, decimals uint8) oracle.ExchangeRate {
	return oracle.ExchangeRate{Value: uint256.NewInt(value), Decimals: decimals, Version: 1}
}

func TestConvertToUSD(t *testing.T) {
	cases := []struct {
		name   string
		native *uint256.Int
		rate   oracle.ExchangeRate
		want   *uint256.Int
	}{
		{
			// 0.1 native at 2000 USD (8 decimals) is 200 USD.
			name:   "tenth of a unit at 2000",
			native: uint256.NewInt(100_000_000_000_000_000),
			rate:   rate(200_000_000_000, 8),
			want:   new(uint256.Int).Mul(uint256.NewInt(200), uint256.NewInt(1_000_000_000_000_000_000)),
		},
		{
			name:   "zero amount",
			native: uint256.NewInt(0),
			rate:   rate(200_000_000_000, 8),
			want:   uint256.NewInt(0),
		},
		{
			name:   "truncates toward zero",
			native: uint256.NewInt(1),
			rate:   rate(3, 1),
			want:   uint256.NewInt(0),
		},
		{
			name:   "zero-decimal rate",
			native: uint256.NewInt(7),
			rate:   rate(5, 0),
			want:   uint256.NewInt(35),
		},
		{
			name:   "scale wider than 256 bits",
			native: uint256.NewInt(1_000_000),
			rate:   rate(9, 200),
			want:   uint256.NewInt(0),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConvertToUSD(tc.native, tc.rate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Eq(tc.want) {
				t.Fatalf("converted value mismatch: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestConvertToUSDOverflow(t *testing.T) {
	huge := new(uint256.Int).Not(uint256.NewInt(0))
	_, err := ConvertToUSD(huge, rate(2, 0))
	if !errors.Is(err, ErrArithmeticOverflow) {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}
}

func TestConvertToUSDNilRate(t *testing.T) {
	_, err := ConvertToUSD(uint256.NewInt(1), oracle.ExchangeRate{Decimals: 8})
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
