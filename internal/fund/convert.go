package fund

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/samuelsmith442/fundpool/internal/oracle"
)

// maxPow10 is the largest n for which 10^n fits in 256 bits.
const maxPow10 = 77

// ConvertToUSD converts a native amount (18-decimal smallest units) into
// reference-currency smallest units (18 decimals) using the given rate.
// Division truncates toward zero.
func ConvertToUSD(native *uint256.Int, rate oracle.ExchangeRate) (*uint256.Int, error) {
	if rate.Value == nil {
		return nil, fmt.Errorf("%w: rate has no value", oracle.ErrUnavailable)
	}

	product := new(uint256.Int)
	if _, overflow := product.MulOverflow(native, rate.Value); overflow {
		return nil, fmt.Errorf("%w: %s * %s exceeds 256 bits", ErrArithmeticOverflow, native, rate.Value)
	}

	// 10^decimals no longer fits in 256 bits past 77, so any representable
	// product truncates to zero.
	if rate.Decimals > maxPow10 {
		return uint256.NewInt(0), nil
	}

	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(rate.Decimals)))
	return product.Div(product, scale), nil
}
