// Package memory provides an in-process record store. It backs tests and the
// default backend when no SQLite path is configured.
package memory

import (
	"context"
	"sync"

	"gastos/internal/core"
	"gastos/internal/ledger"
)

type incomeKey struct {
	bucket core.MonthYear
	payer  core.Payer
}

// Store keeps records in insertion order and incomes keyed by month bucket
// and payer. All methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	items   []core.ExpenseRecord
	incomes map[incomeKey]core.Money
}

func New() *Store {
	return &Store{incomes: make(map[incomeKey]core.Money)}
}

func (s *Store) Save(_ context.Context, r core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return nil
}

// SaveBatch appends all records or none. With a single lock and an in-memory
// slice the batch is trivially atomic.
func (s *Store) SaveBatch(_ context.Context, rs []core.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rs...)
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) FetchAll(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.ExpenseRecord(nil), s.items...)
	ledger.SortByDateDesc(out)
	return out, nil
}

func (s *Store) SetIncome(_ context.Context, bucket core.MonthYear, payer core.Payer, amount core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes[incomeKey{bucket: bucket.Normalize(), payer: payer}] = amount
	return nil
}

func (s *Store) Incomes(_ context.Context, bucket core.MonthYear) (map[core.Payer]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[core.Payer]core.Money)
	for k, v := range s.incomes {
		if k.bucket == bucket.Normalize() {
			out[k.payer] = v
		}
	}
	return out, nil
}
