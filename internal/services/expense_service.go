// Package services orchestrates the ledger, the income settings store, and
// the change-event publisher behind one facade consumed by the HTTP layer
// and the exporter worker.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gastos/internal/core"
	"gastos/internal/events"
	"gastos/internal/ledger"
	"gastos/internal/report"
)

// Publisher emits ledger change notifications. Publish failures are logged
// and swallowed: the record is already persisted and listeners resynchronize
// from the store anyway.
type Publisher interface {
	PublishRecordChange(ctx context.Context, msg *events.RecordChange) error
}

// IncomeStore keeps the per-month household incomes.
type IncomeStore interface {
	SetIncome(ctx context.Context, bucket core.MonthYear, payer core.Payer, amount core.Money) error
	Incomes(ctx context.Context, bucket core.MonthYear) (map[core.Payer]core.Money, error)
}

type ExpenseService struct {
	ledger    *ledger.Ledger
	incomes   IncomeStore
	publisher Publisher
}

// NewExpenseService wires the facade. publisher may be nil when AMQP is not
// configured; incomes may be nil only in tests that never touch them.
func NewExpenseService(l *ledger.Ledger, incomes IncomeStore, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		ledger:    l,
		incomes:   incomes,
		publisher: publisher,
	}
}

// CreateExpense records a single expense and notifies listeners.
func (s *ExpenseService) CreateExpense(ctx context.Context, in ledger.ExpenseInput) (core.ExpenseRecord, error) {
	rec, err := s.ledger.AddExpense(ctx, in)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	s.publish(ctx, events.TypeRecordCreated, rec)
	return rec, nil
}

// CreateInstallments records a split purchase and notifies listeners once
// per installment, since the installments land in different month buckets.
func (s *ExpenseService) CreateInstallments(ctx context.Context, in ledger.InstallmentInput) ([]core.ExpenseRecord, error) {
	recs, err := s.ledger.AddInstallments(ctx, in)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		s.publish(ctx, events.TypeRecordCreated, rec)
	}
	return recs, nil
}

// DeleteExpense removes a record and notifies listeners with the bucket the
// record counted toward.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	var deleted core.ExpenseRecord
	for _, rec := range s.ledger.List() {
		if rec.ID == id {
			deleted = rec
			break
		}
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		return err
	}
	// Undated legacy records belong to no month bucket, so there is no
	// snapshot to rebuild.
	if deleted.HasDate() {
		s.publish(ctx, events.TypeRecordDeleted, deleted)
	}
	return nil
}

// ListExpenses returns the full view, most recent first.
func (s *ExpenseService) ListExpenses() []core.ExpenseRecord {
	return s.ledger.List()
}

// MonthExpenses returns the records of one month bucket.
func (s *ExpenseService) MonthExpenses(month, year int) []core.ExpenseRecord {
	return ledger.FilterByMonthYear(s.ledger.List(), month, year)
}

// MonthSummary aggregates one month's records together with the stored
// incomes for that month.
func (s *ExpenseService) MonthSummary(ctx context.Context, month, year int) (report.MonthSummary, error) {
	bucket := core.MonthYear{Month: month, Year: year}
	incomes, err := s.incomes.Incomes(ctx, bucket)
	if err != nil {
		return report.MonthSummary{}, fmt.Errorf("load incomes: %w", err)
	}
	return report.Summarize(bucket, s.MonthExpenses(month, year), incomes), nil
}

// ExportMonthCSV streams the month's records as CSV rows, in view order.
func (s *ExpenseService) ExportMonthCSV(w io.Writer, month, year int) error {
	return report.WriteCSV(w, s.MonthExpenses(month, year))
}

// SetIncome stores one member's income for a month bucket.
func (s *ExpenseService) SetIncome(ctx context.Context, bucket core.MonthYear, payer core.Payer, amount core.Money) error {
	if !payer.Valid() {
		return core.ErrInvalidPayer
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	return s.incomes.SetIncome(ctx, bucket, payer, amount)
}

// Incomes returns the stored incomes for a month bucket.
func (s *ExpenseService) Incomes(ctx context.Context, bucket core.MonthYear) (map[core.Payer]core.Money, error) {
	return s.incomes.Incomes(ctx, bucket)
}

func (s *ExpenseService) publish(ctx context.Context, typ string, rec core.ExpenseRecord) {
	if s.publisher == nil {
		return
	}
	bucket := core.MonthYearOf(rec.Date)
	msg := events.NewRecordChange(typ, rec.ID, bucket.Month, bucket.Year)
	if err := s.publisher.PublishRecordChange(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			"type", typ,
			"id", rec.ID,
			"error", err)
	}
}
