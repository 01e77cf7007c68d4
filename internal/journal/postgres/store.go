package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samuelsmith442/fundpool/internal/model"
)

// Store journals ledger events to Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the journal table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ledger_events (
			id BIGSERIAL PRIMARY KEY,
			kind TEXT NOT NULL,
			account TEXT NOT NULL,
			amount NUMERIC(78, 0) NOT NULL,
			pool_balance NUMERIC(78, 0) NOT NULL,
			funder_count BIGINT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Record appends a batch of ledger events.
func (s *Store) Record(events []model.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO ledger_events (
				kind, account, amount, pool_balance, funder_count, recorded_at
			) VALUES ($1, $2, $3, $4, $5, $6)
		`,
			event.Kind,
			event.Account,
			event.Amount,
			event.PoolBalance,
			int64(event.FunderCount),
			event.RecordedAt,
		)
	}

	br := s.pool.SendBatch(context.Background(), batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
