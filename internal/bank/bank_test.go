package bank

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

func TestCreditAndDebit(t *testing.T) {
	accounts := NewBank()

	if err := accounts.Credit(alice, uint256.NewInt(100)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := accounts.Debit(alice, uint256.NewInt(30)); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if balance := accounts.BalanceOf(alice); !balance.Eq(uint256.NewInt(70)) {
		t.Fatalf("balance mismatch: %s", balance)
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	accounts := NewBank()

	if err := accounts.Debit(alice, uint256.NewInt(1)); err == nil {
		t.Fatalf("expected error debiting empty account")
	}

	if err := accounts.Credit(alice, uint256.NewInt(10)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := accounts.Debit(alice, uint256.NewInt(11)); err == nil {
		t.Fatalf("expected error debiting past balance")
	}
	if balance := accounts.BalanceOf(alice); !balance.Eq(uint256.NewInt(10)) {
		t.Fatalf("failed debit changed balance: %s", balance)
	}
}

func TestTransferCreditsRecipient(t *testing.T) {
	accounts := NewBank()

	if err := accounts.Transfer(bob, uint256.NewInt(42)); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if err := accounts.Transfer(bob, uint256.NewInt(8)); err != nil {
		t.Fatalf("second transfer failed: %v", err)
	}
	if balance := accounts.BalanceOf(bob); !balance.Eq(uint256.NewInt(50)) {
		t.Fatalf("recipient balance mismatch: %s", balance)
	}
}

func TestBalanceOfUnknownAccount(t *testing.T) {
	accounts := NewBank()

	if balance := accounts.BalanceOf(alice); !balance.IsZero() {
		t.Fatalf("unknown account should be zero: %s", balance)
	}
}
