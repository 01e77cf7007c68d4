package fund

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/samuelsmith442/fundpool/internal/oracle"
)

// Settler moves native value out of the pool into an account. The hosting
// environment supplies the implementation.
type Settler interface {
	Transfer(to common.Address, amount *uint256.Int) error
}

// Pool is the pooled-contribution ledger: cumulative amounts per funder, the
// funders in first-contribution order, and the native balance currently held.
// A single mutex serializes every mutating operation, so each deposit or
// withdrawal runs to completion before the next begins.
type Pool struct {
	owner      common.Address
	minimumUSD *uint256.Int
	oracle     oracle.PriceOracle
	settler    Settler

	mu      sync.Mutex
	amounts map[common.Address]*uint256.Int
	funders []common.Address
	balance *uint256.Int
}

// NewPool creates an empty ledger owned by the given address. The minimum is
// denominated in reference-currency smallest units (18 decimals) and fixed for
// the pool's lifetime, as is the owner.
func NewPool(owner common.Address, minimumUSD *uint256.Int, priceOracle oracle.PriceOracle, settler Settler) *Pool {
	return &Pool{
		owner:      owner,
		minimumUSD: new(uint256.Int).Set(minimumUSD),
		oracle:     priceOracle,
		settler:    settler,
		amounts:    make(map[common.Address]*uint256.Int),
		balance:    uint256.NewInt(0),
	}
}

// Deposit admits a contribution if its oracle-converted value meets the pool
// minimum. First-time funders are appended to the ordered funder sequence;
// repeat deposits accumulate without a second entry. On any failure the ledger
// is left exactly as it was.
func (p *Pool) Deposit(ctx context.Context, from common.Address, amount *uint256.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rate, err := p.oracle.Read(ctx)
	if err != nil {
		return fmt.Errorf("read oracle: %w", err)
	}

	usdValue, err := ConvertToUSD(amount, rate)
	if err != nil {
		return err
	}
	if usdValue.Lt(p.minimumUSD) {
		return fmt.Errorf("%w: %s USD below minimum %s", ErrInsufficientValue, usdValue, p.minimumUSD)
	}

	current := p.amounts[from]
	if current == nil {
		current = uint256.NewInt(0)
	}
	newAmount := new(uint256.Int)
	if _, overflow := newAmount.AddOverflow(current, amount); overflow {
		return fmt.Errorf("%w: cumulative amount for %s", ErrArithmeticOverflow, from)
	}
	newBalance := new(uint256.Int)
	if _, overflow := newBalance.AddOverflow(p.balance, amount); overflow {
		return fmt.Errorf("%w: pool balance", ErrArithmeticOverflow)
	}

	if _, seen := p.amounts[from]; !seen {
		p.funders = append(p.funders, from)
	}
	p.amounts[from] = newAmount
	p.balance = newBalance
	return nil
}

// Owner returns the privileged account fixed at construction.
func (p *Pool) Owner() common.Address {
	return p.owner
}

// MinimumUSD returns the admission threshold in reference-currency units.
func (p *Pool) MinimumUSD() *uint256.Int {
	return new(uint256.Int).Set(p.minimumUSD)
}

// AmountOf returns the cumulative amount deposited by funder, zero if none.
func (p *Pool) AmountOf(funder common.Address) *uint256.Int {
	p.mu.Lock()
	defer p.mu.Unlock()

	amount := p.amounts[funder]
	if amount == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(amount)
}

// FunderAt returns the funder at the given position in first-contribution
// order.
func (p *Pool) FunderAt(index uint64) (common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= uint64(len(p.funders)) {
		return common.Address{}, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, len(p.funders))
	}
	return p.funders[index], nil
}

// FunderCount returns the number of distinct funders since the last
// withdrawal.
func (p *Pool) FunderCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return uint64(len(p.funders))
}

// Balance returns the native value currently held by the pool.
func (p *Pool) Balance() *uint256.Int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return new(uint256.Int).Set(p.balance)
}

// OracleVersion reports the bound oracle's revision tag.
func (p *Pool) OracleVersion(ctx context.Context) (uint64, error) {
	return p.oracle.Version(ctx)
}

func (p *Pool) requireOwner(caller common.Address) error {
	if caller != p.owner {
		return fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, caller)
	}
	return nil
}
