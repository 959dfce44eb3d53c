package core

import (
	"errors"
	"testing"
	"time"
)

func validRecord() ExpenseRecord {
	return ExpenseRecord{
		ID:            "r1",
		Category:      CategoryMercado,
		SubCategory:   "Compra do mês",
		Amount:        Money{Cents: 15000},
		Payer:         PayerMarido,
		PaymentMethod: PaymentPix,
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ExpenseRecord)
		want   error
	}{
		{"empty category", func(r *ExpenseRecord) { r.Category = "" }, ErrInvalidCategory},
		{"unknown category", func(r *ExpenseRecord) { r.Category = "Barcos" }, ErrInvalidCategory},
		{"negative amount", func(r *ExpenseRecord) { r.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"empty payer", func(r *ExpenseRecord) { r.Payer = "" }, ErrInvalidPayer},
		{"unknown payer", func(r *ExpenseRecord) { r.Payer = "vizinho" }, ErrInvalidPayer},
		{"unknown payment method", func(r *ExpenseRecord) { r.PaymentMethod = "cheque" }, ErrInvalidPaymentMethod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			if err := r.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCategoryEmoji(t *testing.T) {
	if got := CategoryAgua.Emoji(); got != "💧" {
		t.Fatalf("got %q", got)
	}
	if got := Category("Barcos").Emoji(); got != "❓" {
		t.Fatalf("unknown category should map to fallback, got %q", got)
	}
}

func TestSubCategorySuggestions(t *testing.T) {
	subs := SubCategorySuggestions(CategoryIgreja)
	if len(subs) != 3 {
		t.Fatalf("expected 3 suggestions for Igreja, got %d", len(subs))
	}
	subs[0] = "mutated"
	again := SubCategorySuggestions(CategoryIgreja)
	if again[0] == "mutated" {
		t.Fatal("SubCategorySuggestions must return a copy")
	}
	if got := SubCategorySuggestions(CategoryLuz); len(got) != 0 {
		t.Fatalf("categories without suggestions should return empty, got %v", got)
	}
}

func TestHasDate(t *testing.T) {
	r := validRecord()
	if !r.HasDate() {
		t.Fatal("expected dated record")
	}
	r.Date = time.Time{}
	if r.HasDate() {
		t.Fatal("zero date should report no date")
	}
}
