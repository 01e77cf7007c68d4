package model

// Event kinds recorded by the ledger journal.
const (
	EventDeposit  = "deposit"
	EventWithdraw = "withdraw"
)

// LedgerEvent is one committed ledger operation, journaled after the fact.
// Amounts are decimal strings in native smallest units.
type LedgerEvent struct {
	Kind        string `json:"kind"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	PoolBalance string `json:"pool_balance"`
	FunderCount uint64 `json:"funder_count"`
	RecordedAt  string `json:"recorded_at"`
}
