package journal

import "github.com/samuelsmith442/fundpool/internal/model"

// Journal is an append-only sink for committed ledger events. The ledger
// never reads events back; sinks exist for audit and debugging.
type Journal interface {
	Record(events []model.LedgerEvent) error
}

// Multi fans events out to several sinks in order, stopping at the first
// failure.
type Multi []Journal

func (m Multi) Record(events []model.LedgerEvent) error {
	for _, sink := range m {
		if err := sink.Record(events); err != nil {
			return err
		}
	}
	return nil
}
