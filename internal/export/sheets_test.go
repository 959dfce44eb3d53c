package export

import (
	"testing"

	"gastos/internal/core"
	"gastos/internal/report"
)

func TestSummaryRowShape(t *testing.T) {
	s := report.MonthSummary{
		Bucket:       core.MonthYear{Month: 5, Year: 2025},
		GrandTotal:   core.Money{Cents: 123450},
		TotalIncome:  core.Money{Cents: 500000},
		BalanceCents: 376550,
		ByPayer: map[core.Payer]core.Money{
			core.PayerMarido: {Cents: 100000},
			core.PayerEsposa: {Cents: 23450},
		},
	}

	row := summaryRow(s)
	want := len(core.Payers) + 5
	if len(row) != want {
		t.Fatalf("row has %d columns, want %d", len(row), want)
	}
	if row[0] != 2025 || row[1] != 5 {
		t.Fatalf("bucket columns %v/%v, want 2025/5", row[0], row[1])
	}
	if row[2] != 1234.50 || row[3] != 5000.00 {
		t.Fatalf("total/income columns %v/%v", row[2], row[3])
	}
	if row[4] != 3765.50 {
		t.Fatalf("balance column %v, want 3765.50", row[4])
	}
	// Per-payer columns follow the fixed core.Payers order.
	if row[5] != 1000.00 || row[6] != 234.50 {
		t.Fatalf("payer columns %v/%v", row[5], row[6])
	}
}

func TestSummaryRowOverspentMonth(t *testing.T) {
	s := report.MonthSummary{
		Bucket:       core.MonthYear{Month: 1, Year: 2025},
		GrandTotal:   core.Money{Cents: 30000},
		TotalIncome:  core.Money{Cents: 20000},
		BalanceCents: -10000,
	}
	row := summaryRow(s)
	if row[4] != -100.00 {
		t.Fatalf("balance column %v, want -100.00", row[4])
	}
	// Payers without recorded spending still occupy their columns.
	if row[5] != 0.00 || row[6] != 0.00 {
		t.Fatalf("payer columns %v/%v, want zeros", row[5], row[6])
	}
}

func TestLoadCredentialsInlineJSON(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	got, err := loadCredentials()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"type":"service_account"}` {
		t.Fatalf("credentials %q", got)
	}
}

func TestLoadCredentialsNoneConfigured(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := loadCredentials(); err == nil {
		t.Fatal("expected an error with no credentials configured")
	}
}
