package oracle

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
)

// StaticAggregator is a deterministic in-memory price source for tests and
// local environments. It mirrors the read surface of an on-chain aggregator:
// a fixed-decimals answer that can be updated, bumping the round version.
type StaticAggregator struct {
	mu       sync.RWMutex
	answer   *uint256.Int
	decimals uint8
	version  uint64
}

// NewStaticAggregator seeds a local aggregator with an initial answer.
func NewStaticAggregator(initialAnswer *uint256.Int, decimals uint8) *StaticAggregator {
	return &StaticAggregator{
		answer:   new(uint256.Int).Set(initialAnswer),
		decimals: decimals,
		version:  1,
	}
}

// Read returns the current answer. Never fails.
func (s *StaticAggregator) Read(_ context.Context) (ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExchangeRate{
		Value:    new(uint256.Int).Set(s.answer),
		Decimals: s.decimals,
		Version:  s.version,
	}, nil
}

// Version returns the current round version.
func (s *StaticAggregator) Version(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

// UpdateAnswer replaces the answer and advances the version.
func (s *StaticAggregator) UpdateAnswer(answer *uint256.Int) {
	s.mu.Lock()
	s.answer = new(uint256.Int).Set(answer)
	s.version++
	s.mu.Unlock()
}
