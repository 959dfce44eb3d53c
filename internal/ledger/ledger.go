// Package ledger owns the authoritative collection of expense records. It
// wraps a record store collaborator, keeps an in-memory view that is reloaded
// after every successful mutation, and generates installment batches for
// split credit purchases.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"gastos/internal/core"
)

// Store is the record store collaborator. Implementations must treat
// SaveBatch as a single transaction: either every record in the batch is
// persisted or none are. Delete returns core.ErrNotFound for unknown ids.
type Store interface {
	Save(ctx context.Context, r core.ExpenseRecord) error
	SaveBatch(ctx context.Context, rs []core.ExpenseRecord) error
	Delete(ctx context.Context, id string) error
	// FetchAll returns every record ordered by date descending. Records
	// without a date come last; equal dates keep insertion order.
	FetchAll(ctx context.Context) ([]core.ExpenseRecord, error)
}

// ExpenseInput carries the fields of a single expense entry. Target is the
// month bucket the expense counts toward; nil means the current month.
type ExpenseInput struct {
	Category      core.Category
	SubCategory   string
	Amount        core.Money
	Payer         core.Payer
	PaymentMethod core.PaymentMethod
	Target        *core.MonthYear
}

// Ledger is the single writer over the record collection. The HTTP layer may
// call it from multiple goroutines, so mutations and view reads are
// serialized internally; callers still observe strict read-after-write
// ordering because every mutation reloads the view before returning.
type Ledger struct {
	store Store
	now   func() time.Time

	mu   chan struct{} // buffered size 1, held across mutate+reload
	view []core.ExpenseRecord
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the wall clock, used by tests to pin "now". Clock
// readings are converted to UTC before any month attribution, matching the
// UTC instants the store persists.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		mu:    make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Ledger) lock()   { l.mu <- struct{}{} }
func (l *Ledger) unlock() { <-l.mu }

// Load primes the in-memory view from the store. Call once at startup.
func (l *Ledger) Load(ctx context.Context) error {
	l.lock()
	defer l.unlock()
	return l.reload(ctx)
}

// AddExpense validates, persists, and returns a new expense record. When the
// target bucket matches the real current month/year the record is dated
// "now", so it sorts to the top of its month; any other bucket gets the
// first day of that month.
func (l *Ledger) AddExpense(ctx context.Context, in ExpenseInput) (core.ExpenseRecord, error) {
	now := l.now().UTC()
	r := core.ExpenseRecord{
		ID:            uuid.NewString(),
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		Amount:        in.Amount,
		Payer:         in.Payer,
		PaymentMethod: in.PaymentMethod,
		Date:          entryDate(now, in.Target),
	}
	if err := r.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	l.lock()
	defer l.unlock()
	if err := l.store.Save(ctx, r); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("save expense: %w: %w", core.ErrPersistence, err)
	}
	if err := l.reload(ctx); err != nil {
		return core.ExpenseRecord{}, err
	}
	slog.InfoContext(ctx, "Expense recorded",
		"id", r.ID,
		"category", r.Category,
		"amount_cents", r.Amount.Cents,
		"payer", r.Payer)
	return r, nil
}

// AddInstallments splits a purchase into monthly installment records and
// persists them as one atomic batch.
func (l *Ledger) AddInstallments(ctx context.Context, in InstallmentInput) ([]core.ExpenseRecord, error) {
	rs, err := PlanInstallments(in, l.now().UTC())
	if err != nil {
		return nil, err
	}

	l.lock()
	defer l.unlock()
	if err := l.store.SaveBatch(ctx, rs); err != nil {
		return nil, fmt.Errorf("save installment batch: %w: %w", core.ErrPersistence, err)
	}
	if err := l.reload(ctx); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Installment batch recorded",
		"category", in.Category,
		"total_cents", in.Total.Cents,
		"installments", in.Count)
	return rs, nil
}

// Delete removes a record by id. Unknown ids surface core.ErrNotFound and
// leave the ledger untouched.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.lock()
	defer l.unlock()
	if err := l.store.Delete(ctx, id); err != nil {
		if err == core.ErrNotFound {
			return err
		}
		return fmt.Errorf("delete expense %s: %w: %w", id, core.ErrPersistence, err)
	}
	if err := l.reload(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// List returns a copy of the current view, most recent first.
func (l *Ledger) List() []core.ExpenseRecord {
	l.lock()
	defer l.unlock()
	return append([]core.ExpenseRecord(nil), l.view...)
}

// reload refetches the sorted view from the store. On failure the previous
// view stays in place, so a failed mutation never exposes partial state.
// Caller must hold the lock.
func (l *Ledger) reload(ctx context.Context) error {
	rs, err := l.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("reload ledger: %w: %w", core.ErrPersistence, err)
	}
	SortByDateDesc(rs)
	l.view = rs
	return nil
}

// SortByDateDesc orders records most recent first, keeping ties in their
// existing order and pushing records without a date to the end.
func SortByDateDesc(rs []core.ExpenseRecord) {
	sort.SliceStable(rs, func(i, j int) bool {
		di, dj := rs[i].Date, rs[j].Date
		if di.IsZero() || dj.IsZero() {
			return !di.IsZero() && dj.IsZero()
		}
		return di.After(dj)
	})
}

// FilterByMonthYear returns the records whose date falls inside the given
// month and year. Records without a date are excluded. The month may be out
// of range; it is normalized first.
func FilterByMonthYear(rs []core.ExpenseRecord, month, year int) []core.ExpenseRecord {
	bucket := core.MonthYear{Month: month, Year: year}
	var out []core.ExpenseRecord
	for _, r := range rs {
		if bucket.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// entryDate implements the "now vs synthesized first-of-month" rule shared
// by AddExpense and the first installment.
func entryDate(now time.Time, target *core.MonthYear) time.Time {
	if target == nil {
		return now
	}
	n := target.Normalize()
	if core.MonthYearOf(now) == n {
		return now
	}
	return n.FirstDay()
}
