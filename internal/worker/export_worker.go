// Package worker regenerates export artifacts whenever the ledger changes.
// It consumes record-change events and rewrites the affected month's CSV
// snapshot, optionally appending the refreshed summary to a shared Google
// spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gastos/internal/core"
	"gastos/internal/events"
	"gastos/internal/ledger"
	"gastos/internal/report"
	"gastos/internal/services"
)

// SummaryAppender pushes a month summary to an external sheet.
type SummaryAppender interface {
	AppendMonthSummary(ctx context.Context, s report.MonthSummary) error
}

type ExportWorker struct {
	store   ledger.Store
	incomes services.IncomeStore
	dir     string
	sheets  SummaryAppender // nil when not configured
}

func NewExportWorker(store ledger.Store, incomes services.IncomeStore, dir string, sheets SummaryAppender) *ExportWorker {
	return &ExportWorker{
		store:   store,
		incomes: incomes,
		dir:     dir,
		sheets:  sheets,
	}
}

// Run consumes record changes until ctx is done.
func (w *ExportWorker) Run(ctx context.Context, client *events.Client) error {
	return client.ConsumeRecordChanges(ctx, func(msg *events.RecordChange) error {
		return w.HandleChange(ctx, msg)
	})
}

// HandleChange refreshes the exports of the bucket named in the message. The
// message carries no record data, so a stale or duplicated delivery just
// causes an extra rebuild from current store state.
func (w *ExportWorker) HandleChange(ctx context.Context, msg *events.RecordChange) error {
	bucket := core.MonthYear{Month: msg.Month, Year: msg.Year}.Normalize()

	all, err := w.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}
	recs := ledger.FilterByMonthYear(all, bucket.Month, bucket.Year)

	path, err := w.writeCSV(bucket, recs)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "CSV snapshot written",
		"path", path,
		"records", len(recs),
		"trigger", msg.Type)

	if w.sheets == nil {
		return nil
	}
	incomes, err := w.incomes.Incomes(ctx, bucket)
	if err != nil {
		return fmt.Errorf("load incomes: %w", err)
	}
	summary := report.Summarize(bucket, recs, incomes)
	if err := w.sheets.AppendMonthSummary(ctx, summary); err != nil {
		return fmt.Errorf("append sheet summary: %w", err)
	}
	return nil
}

// writeCSV writes the month snapshot through a temp file so readers never
// see a partial export.
func (w *ExportWorker) writeCSV(bucket core.MonthYear, recs []core.ExpenseRecord) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("Gastos_%d_%d.csv", bucket.Month, bucket.Year))

	tmp, err := os.CreateTemp(w.dir, ".gastos-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := report.WriteCSV(tmp, recs); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move export into place: %w", err)
	}
	return path, nil
}
