package report

import (
	"testing"
	"time"

	"gastos/internal/core"
)

func sampleRecords() []core.ExpenseRecord {
	date := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	return []core.ExpenseRecord{
		{ID: "1", Category: core.CategoryMercado, Amount: core.Money{Cents: 10000}, Payer: core.PayerMarido, PaymentMethod: core.PaymentPix, Date: date},
		{ID: "2", Category: core.CategoryMercado, Amount: core.Money{Cents: 5000}, Payer: core.PayerEsposa, PaymentMethod: core.PaymentDinheiro, Date: date},
		{ID: "3", Category: core.CategoryCarro, Amount: core.Money{Cents: 20000}, Payer: core.PayerMarido, PaymentMethod: core.PaymentCredito, Date: date},
	}
}

func TestTotals(t *testing.T) {
	rs := sampleRecords()

	if got := TotalByPayer(rs, core.PayerMarido); got.Cents != 30000 {
		t.Fatalf("TotalByPayer(marido) = %d, want 30000", got.Cents)
	}
	if got := TotalByPayer(rs, core.PayerEsposa); got.Cents != 5000 {
		t.Fatalf("TotalByPayer(esposa) = %d, want 5000", got.Cents)
	}
	if got := TotalByCategory(rs, core.PayerMarido, core.CategoryMercado); got.Cents != 10000 {
		t.Fatalf("TotalByCategory(marido, Mercado) = %d, want 10000", got.Cents)
	}
	if got := TotalByPaymentMethod(rs, core.PaymentCredito); got.Cents != 20000 {
		t.Fatalf("TotalByPaymentMethod(Crédito) = %d, want 20000", got.Cents)
	}
	if got := GrandTotal(rs); got.Cents != 35000 {
		t.Fatalf("GrandTotal = %d, want 35000", got.Cents)
	}
	if got := GrandTotal(nil); got.Cents != 0 {
		t.Fatalf("GrandTotal(nil) = %d, want 0", got.Cents)
	}
}

func TestPercentOfIncome(t *testing.T) {
	cases := []struct {
		total, income int64
		want          float64
	}{
		{5000, 0, 0},
		{5000, -1, 0},
		{5000, 10000, 50},
		{10000, 10000, 100},
		{15000, 10000, 150},
	}
	for i, tc := range cases {
		got := PercentOfIncome(core.Money{Cents: tc.total}, core.Money{Cents: tc.income})
		if got != tc.want {
			t.Fatalf("case %d: PercentOfIncome(%d, %d) = %v, want %v", i, tc.total, tc.income, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	incomes := map[core.Payer]core.Money{
		core.PayerMarido: {Cents: 50000},
		core.PayerEsposa: {Cents: 20000},
	}
	s := Summarize(core.MonthYear{Month: 5, Year: 2025}, sampleRecords(), incomes)

	if s.GrandTotal.Cents != 35000 {
		t.Fatalf("grand total %d, want 35000", s.GrandTotal.Cents)
	}
	if s.TotalIncome.Cents != 70000 {
		t.Fatalf("total income %d, want 70000", s.TotalIncome.Cents)
	}
	if s.BalanceCents != 35000 {
		t.Fatalf("balance %d, want 35000", s.BalanceCents)
	}
	if s.ByPayer[core.PayerMarido].Cents != 30000 {
		t.Fatalf("marido total %d, want 30000", s.ByPayer[core.PayerMarido].Cents)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 category shares, got %d", len(s.ByCategory))
	}
	for _, cs := range s.ByCategory {
		if cs.Category == core.CategoryCarro && cs.PercentOfIncome != float64(20000)/70000*100 {
			t.Fatalf("Carro share %v", cs.PercentOfIncome)
		}
	}
}

func TestSummarizeNoIncome(t *testing.T) {
	s := Summarize(core.MonthYear{Month: 5, Year: 2025}, sampleRecords(), nil)
	if s.BalanceCents != -35000 {
		t.Fatalf("balance without income should go negative, got %d", s.BalanceCents)
	}
	for _, cs := range s.ByCategory {
		if cs.PercentOfIncome != 0 {
			t.Fatalf("percent with zero income must be 0, got %v", cs.PercentOfIncome)
		}
	}
}
