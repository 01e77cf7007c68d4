package fund

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Withdraw drains the pool to the caller, who must be the owner, and resets
// the ledger. The clearing loop re-reads the funder sequence from pool state
// on every step; CheaperWithdraw is the equivalent variant with hoisted reads.
// Ledger reset and payout commit together: a rejected transfer restores the
// ledger and leaves no trace of the attempt.
func (p *Pool) Withdraw(caller common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return err
	}

	snap := p.snapshot()

	for i := 0; i < len(p.funders); i++ {
		delete(p.amounts, p.funders[i])
	}
	p.funders = nil

	return p.payout(caller, snap)
}

// CheaperWithdraw is Withdraw with the funder sequence and its length hoisted
// into locals before the clearing loop. Outcome is identical to Withdraw for
// any starting ledger.
func (p *Pool) CheaperWithdraw(caller common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.requireOwner(caller); err != nil {
		return err
	}

	snap := p.snapshot()

	funders := p.funders
	count := len(funders)
	for i := 0; i < count; i++ {
		delete(p.amounts, funders[i])
	}
	p.funders = nil

	return p.payout(caller, snap)
}

type ledgerSnapshot struct {
	amounts map[common.Address]*uint256.Int
	funders []common.Address
	balance *uint256.Int
}

// snapshot copies the mutable ledger state for rollback. Callers hold p.mu.
func (p *Pool) snapshot() ledgerSnapshot {
	amounts := make(map[common.Address]*uint256.Int, len(p.amounts))
	for funder, amount := range p.amounts {
		amounts[funder] = new(uint256.Int).Set(amount)
	}
	funders := make([]common.Address, len(p.funders))
	copy(funders, p.funders)
	return ledgerSnapshot{
		amounts: amounts,
		funders: funders,
		balance: new(uint256.Int).Set(p.balance),
	}
}

// payout transfers the captured balance to the caller, restoring the snapshot
// if the settler rejects it. Callers hold p.mu.
func (p *Pool) payout(caller common.Address, snap ledgerSnapshot) error {
	captured := new(uint256.Int).Set(p.balance)
	p.balance = uint256.NewInt(0)

	if err := p.settler.Transfer(caller, captured); err != nil {
		p.amounts = snap.amounts
		p.funders = snap.funders
		p.balance = snap.balance
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return nil
}
