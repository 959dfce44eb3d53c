// Package storage persists expense records and household incomes in SQLite.
// It implements the ledger's store contract; the ledger, not this package,
// owns ordering and filtering semantics beyond the fetch query.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gastos/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements ledger.Store.
func (r *SQLiteRepository) Save(ctx context.Context, rec core.ExpenseRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, category, sub_category, amount_cents, payer, payment_method, expense_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Category), rec.SubCategory, rec.Amount.Cents,
		string(rec.Payer), string(rec.PaymentMethod), dateColumn(rec.Date))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", rec.ID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)
	return nil
}

// SaveBatch implements ledger.Store. The batch runs in one transaction so an
// installment set is never half-persisted.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, recs []core.ExpenseRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (id, category, sub_category, amount_cents, payer, payment_method, expense_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, string(rec.Category), rec.SubCategory, rec.Amount.Cents,
			string(rec.Payer), string(rec.PaymentMethod), dateColumn(rec.Date)); err != nil {
			return fmt.Errorf("insert expense %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Expense batch saved to SQLite", "count", len(recs))
	return nil
}

// Delete implements ledger.Store.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

// FetchAll implements ledger.Store: date descending, undated rows last,
// insertion order on ties.
func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, sub_category, amount_cents, payer, payment_method, expense_date
		 FROM expenses
		 ORDER BY expense_date IS NULL, expense_date DESC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	defer rows.Close()

	var recs []core.ExpenseRecord
	for rows.Next() {
		var (
			rec      core.ExpenseRecord
			category, payer, method string
			date     sql.NullString
		)
		if err := rows.Scan(&rec.ID, &category, &rec.SubCategory, &rec.Amount.Cents,
			&payer, &method, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.Category = core.Category(category)
		rec.Payer = core.Payer(payer)
		rec.PaymentMethod = core.PaymentMethod(method)
		if date.Valid {
			t, err := time.Parse(dateLayout, date.String)
			if err != nil {
				return nil, fmt.Errorf("parse expense date %q: %w", date.String, err)
			}
			rec.Date = t
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return recs, nil
}

// SetIncome upserts one member's income for a month bucket.
func (r *SQLiteRepository) SetIncome(ctx context.Context, bucket core.MonthYear, payer core.Payer, amount core.Money) error {
	b := bucket.Normalize()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (year, month, payer, amount_cents, updated_at)
		 VALUES (?, ?, ?, ?, datetime('now'))
		 ON CONFLICT (year, month, payer) DO UPDATE
		 SET amount_cents = excluded.amount_cents, updated_at = excluded.updated_at`,
		b.Year, b.Month, string(payer), amount.Cents)
	if err != nil {
		return fmt.Errorf("set income: %w", err)
	}
	return nil
}

// Incomes returns the stored incomes for a month bucket, keyed by payer.
// Members without a stored income are simply absent.
func (r *SQLiteRepository) Incomes(ctx context.Context, bucket core.MonthYear) (map[core.Payer]core.Money, error) {
	b := bucket.Normalize()
	rows, err := r.db.QueryContext(ctx,
		`SELECT payer, amount_cents FROM incomes WHERE year = ? AND month = ?`,
		b.Year, b.Month)
	if err != nil {
		return nil, fmt.Errorf("fetch incomes: %w", err)
	}
	defer rows.Close()

	out := make(map[core.Payer]core.Money)
	for rows.Next() {
		var (
			payer string
			cents int64
		)
		if err := rows.Scan(&payer, &cents); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out[core.Payer(payer)] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incomes: %w", err)
	}
	return out, nil
}

func dateColumn(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(dateLayout)
}
