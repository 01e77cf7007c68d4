package bank

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Bank is an in-memory account book keyed by address. It backs the simulation
// as the pool's settler and as the source funders draw deposits from.
type Bank struct {
	mu       sync.Mutex
	balances map[common.Address]*uint256.Int
}

// NewBank creates an empty account book.
func NewBank() *Bank {
	return &Bank{balances: make(map[common.Address]*uint256.Int)}
}

// Credit adds amount to the account balance.
func (b *Bank) Credit(account common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credit(account, amount)
}

// Debit removes amount from the account balance, failing if the account does
// not hold enough.
func (b *Bank) Debit(account common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.debit(account, amount)
}

// Transfer credits the recipient. It satisfies the pool settler contract; the
// drained pool value has already left ledger accounting, so only the recipient
// side moves here.
func (b *Bank) Transfer(to common.Address, amount *uint256.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credit(to, amount)
}

// BalanceOf returns the account balance, zero for unknown accounts.
func (b *Bank) BalanceOf(account common.Address) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	balance := b.balances[account]
	if balance == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(balance)
}

func (b *Bank) credit(account common.Address, amount *uint256.Int) error {
	current := b.balances[account]
	if current == nil {
		current = uint256.NewInt(0)
	}
	next := new(uint256.Int)
	if _, overflow := next.AddOverflow(current, amount); overflow {
		return fmt.Errorf("credit overflows balance of %s", account)
	}
	b.balances[account] = next
	return nil
}

func (b *Bank) debit(account common.Address, amount *uint256.Int) error {
	current := b.balances[account]
	if current == nil || current.Lt(amount) {
		return fmt.Errorf("insufficient balance in %s", account)
	}
	b.balances[account] = new(uint256.Int).Sub(current, amount)
	return nil
}
