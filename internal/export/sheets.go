// Package export appends monthly summaries to the household's shared Google
// spreadsheet. It is optional: without credentials the exporter worker only
// writes local CSV snapshots.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gastos/internal/core"
	"gastos/internal/report"
)

type SheetsClient struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsClient builds a client using Service Account credentials from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsClient(ctx context.Context, spreadsheetID, sheetName string) (*SheetsClient, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	credentialsJSON, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func loadCredentials() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("no Google credentials configured")
	}
	credentialsJSON, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentialsJSON, nil
}

// summaryRow flattens a month summary into the sheet's column order:
// year, month, total, income, balance, then one column per household member.
func summaryRow(s report.MonthSummary) []any {
	row := []any{
		s.Bucket.Year,
		s.Bucket.Month,
		s.GrandTotal.Reais(),
		s.TotalIncome.Reais(),
		float64(s.BalanceCents) / 100.0,
	}
	for _, p := range core.Payers {
		row = append(row, s.ByPayer[p].Reais())
	}
	return row
}

// AppendMonthSummary appends one summary row to the configured sheet.
func (c *SheetsClient) AppendMonthSummary(ctx context.Context, s report.MonthSummary) error {
	vr := &gsheet.ValueRange{Values: [][]any{summaryRow(s)}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}
	return nil
}
