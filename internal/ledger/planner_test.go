package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gastos/internal/core"
)

func installmentInput() InstallmentInput {
	return InstallmentInput{
		Category:      core.CategoryCredito,
		SubCategory:   "Notebook",
		Total:         core.Money{Cents: 30000},
		Payer:         core.PayerMarido,
		PaymentMethod: core.PaymentCredito,
		Count:         3,
		Initial:       core.MonthYear{Month: 5, Year: 2025},
	}
}

func TestPlanInstallmentsEvenSplit(t *testing.T) {
	rs, err := PlanInstallments(installmentInput(), testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(rs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(rs))
	}
	for i, r := range rs {
		if r.Amount.Cents != 10000 {
			t.Fatalf("installment %d: amount %d, want 10000", i, r.Amount.Cents)
		}
		want := fmt.Sprintf("Notebook - Parcela %d/3", i+1)
		if r.SubCategory != want {
			t.Fatalf("installment %d: label %q, want %q", i, r.SubCategory, want)
		}
	}
}

func TestPlanInstallmentsConsecutiveMonths(t *testing.T) {
	in := installmentInput()
	in.Count = 4
	in.Initial = core.MonthYear{Month: 11, Year: 2025}
	rs, err := PlanInstallments(in, testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	wantBuckets := []core.MonthYear{
		{Month: 11, Year: 2025},
		{Month: 12, Year: 2025},
		{Month: 1, Year: 2026},
		{Month: 2, Year: 2026},
	}
	for i, r := range rs {
		if got := core.MonthYearOf(r.Date); got != wantBuckets[i] {
			t.Fatalf("installment %d: bucket %v, want %v", i, got, wantBuckets[i])
		}
	}
}

func TestPlanInstallmentsRemainderOnLast(t *testing.T) {
	in := installmentInput()
	in.Total = core.Money{Cents: 10000}
	rs, err := PlanInstallments(in, testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var sum int64
	for _, r := range rs {
		sum += r.Amount.Cents
	}
	if sum != 10000 {
		t.Fatalf("installments sum to %d, want exactly 10000", sum)
	}
	if rs[0].Amount.Cents != 3333 || rs[2].Amount.Cents != 3334 {
		t.Fatalf("remainder should land on the last installment, got %d/%d/%d",
			rs[0].Amount.Cents, rs[1].Amount.Cents, rs[2].Amount.Cents)
	}
}

func TestPlanInstallmentsNoSubCategory(t *testing.T) {
	in := installmentInput()
	in.SubCategory = "   "
	rs, err := PlanInstallments(in, testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if rs[0].SubCategory != "Parcela 1/3" {
		t.Fatalf("blank subcategory should yield bare label, got %q", rs[0].SubCategory)
	}
}

func TestPlanInstallmentsCreditLateMonthShift(t *testing.T) {
	lateNow := time.Date(2025, time.May, 31, 10, 0, 0, 0, time.UTC)
	in := installmentInput()
	rs, err := PlanInstallments(in, lateNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if got := core.MonthYearOf(rs[0].Date); got != (core.MonthYear{Month: 6, Year: 2025}) {
		t.Fatalf("purchase on the 31st should post to June, got %v", got)
	}

	// Non-credit purchases never shift, whatever the day.
	in.PaymentMethod = core.PaymentPix
	rs, err = PlanInstallments(in, lateNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if got := core.MonthYearOf(rs[0].Date); got != (core.MonthYear{Month: 5, Year: 2025}) {
		t.Fatalf("non-credit purchase shifted, got %v", got)
	}
}

func TestPlanInstallmentsFirstFollowsEntryRule(t *testing.T) {
	// Initial bucket matches the real current month: the first installment
	// carries the entry time, the rest get the 1st of their month.
	rs, err := PlanInstallments(installmentInput(), testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !rs[0].Date.Equal(testNow) {
		t.Fatalf("first installment date = %v, want now", rs[0].Date)
	}
	if want := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC); !rs[1].Date.Equal(want) {
		t.Fatalf("second installment date = %v, want %v", rs[1].Date, want)
	}

	// Initial bucket in the past: even the first installment is synthesized.
	in := installmentInput()
	in.Initial = core.MonthYear{Month: 1, Year: 2025}
	rs, err = PlanInstallments(in, testNow)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC); !rs[0].Date.Equal(want) {
		t.Fatalf("first installment date = %v, want %v", rs[0].Date, want)
	}
}

func TestPlanInstallmentsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		in := installmentInput()
		in.Count = count
		if _, err := PlanInstallments(in, testNow); !errors.Is(err, core.ErrInvalidInstallmentCount) {
			t.Fatalf("count %d: got %v, want ErrInvalidInstallmentCount", count, err)
		}
	}
}

func TestAddInstallmentsBatchAtomicity(t *testing.T) {
	l, st := newTestLedger(t)

	st.failSave = true
	_, err := l.AddInstallments(context.Background(), installmentInput())
	if !errors.Is(err, core.ErrPersistence) {
		t.Fatalf("got %v, want ErrPersistence", err)
	}
	if len(st.items) != 0 {
		t.Fatalf("failed batch must persist nothing, store has %d records", len(st.items))
	}

	st.failSave = false
	rs, err := l.AddInstallments(context.Background(), installmentInput())
	if err != nil {
		t.Fatalf("add installments: %v", err)
	}
	if len(rs) != 3 || len(l.List()) != 3 {
		t.Fatalf("expected all 3 installments persisted, got %d planned / %d listed", len(rs), len(l.List()))
	}
}
