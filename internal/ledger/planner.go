package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gastos/internal/core"
)

// InstallmentInput describes a purchase to split into monthly installments.
// Initial is the bucket of the first installment before any billing-cycle
// shift. The planner is only invoked from the credit path by convention, but
// it accepts any payment method.
type InstallmentInput struct {
	Category      core.Category
	SubCategory   string
	Total         core.Money
	Payer         core.Payer
	PaymentMethod core.PaymentMethod
	Count         int
	Initial       core.MonthYear
}

// PlanInstallments builds the full batch of installment records for a
// purchase. The total is split in cents with the remainder on the last
// installment, so the batch always sums back to the original amount.
//
// Credit purchases made after the 30th of the month post to the next
// statement, so the initial month shifts forward by one in that case. The
// first installment follows the same date rule as a plain expense entry;
// later installments are always dated the 1st of their month, since they
// have not happened yet.
func PlanInstallments(in InstallmentInput, now time.Time) ([]core.ExpenseRecord, error) {
	if in.Count <= 0 {
		return nil, core.ErrInvalidInstallmentCount
	}

	initialMonth := in.Initial.Month
	if in.PaymentMethod == core.PaymentCredito && now.Day() > 30 {
		initialMonth++
	}

	shares := in.Total.SplitEven(in.Count)
	rs := make([]core.ExpenseRecord, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		bucket := core.MonthYear{Month: initialMonth + i, Year: in.Initial.Year}.Normalize()

		var date time.Time
		if i == 0 {
			date = entryDate(now, &bucket)
		} else {
			date = bucket.FirstDay()
		}

		r := core.ExpenseRecord{
			ID:            uuid.NewString(),
			Category:      in.Category,
			SubCategory:   installmentLabel(in.SubCategory, i+1, in.Count),
			Amount:        shares[i],
			Payer:         in.Payer,
			PaymentMethod: in.PaymentMethod,
			Date:          date,
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// installmentLabel annotates a subcategory with its installment position,
// e.g. "Tech - Parcela 2/5", or just "Parcela 2/5" when none was given.
// "Parcela" is part of the record contract, not translatable UI text.
func installmentLabel(sub string, n, total int) string {
	if strings.TrimSpace(sub) == "" {
		return fmt.Sprintf("Parcela %d/%d", n, total)
	}
	return fmt.Sprintf("%s - Parcela %d/%d", sub, n, total)
}
