// Package report computes read-only summaries over a caller-filtered record
// slice and renders them as export rows. Nothing here mutates state; callers
// pass the month's view and any income figures as plain values.
package report

import "gastos/internal/core"

// TotalByPayer sums the amounts of one household member.
func TotalByPayer(rs []core.ExpenseRecord, payer core.Payer) core.Money {
	var total core.Money
	for _, r := range rs {
		if r.Payer == payer {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TotalByCategory sums the amounts of one member in one category.
func TotalByCategory(rs []core.ExpenseRecord, payer core.Payer, category core.Category) core.Money {
	var total core.Money
	for _, r := range rs {
		if r.Payer == payer && r.Category == category {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TotalByPaymentMethod sums the amounts paid with one method.
func TotalByPaymentMethod(rs []core.ExpenseRecord, method core.PaymentMethod) core.Money {
	var total core.Money
	for _, r := range rs {
		if r.PaymentMethod == method {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// GrandTotal sums every amount in the slice.
func GrandTotal(rs []core.ExpenseRecord) core.Money {
	var total core.Money
	for _, r := range rs {
		total = total.Add(r.Amount)
	}
	return total
}

// PercentOfIncome returns the share of income a total represents, as a
// percentage. An unset or zero income is a normal state, not an error, and
// yields 0.
func PercentOfIncome(total, income core.Money) float64 {
	if income.Cents <= 0 {
		return 0
	}
	return float64(total.Cents) / float64(income.Cents) * 100
}

// CategoryShare is one category's slice of the month.
type CategoryShare struct {
	Category        core.Category
	Total           core.Money
	PercentOfIncome float64
}

// MonthSummary bundles the figures the dashboard and exports display for one
// month bucket.
type MonthSummary struct {
	Bucket       core.MonthYear
	GrandTotal   core.Money
	TotalIncome  core.Money
	BalanceCents int64 // income minus expenses; negative when overspent
	ByPayer      map[core.Payer]core.Money
	ByMethod     map[core.PaymentMethod]core.Money
	ByCategory   []CategoryShare
}

// Summarize computes the month summary from an already-filtered record slice
// and the household incomes for the bucket.
func Summarize(bucket core.MonthYear, rs []core.ExpenseRecord, incomes map[core.Payer]core.Money) MonthSummary {
	s := MonthSummary{
		Bucket:     bucket.Normalize(),
		GrandTotal: GrandTotal(rs),
		ByPayer:    make(map[core.Payer]core.Money, len(core.Payers)),
		ByMethod:   make(map[core.PaymentMethod]core.Money, len(core.PaymentMethods)),
	}
	for _, p := range core.Payers {
		s.ByPayer[p] = TotalByPayer(rs, p)
		s.TotalIncome = s.TotalIncome.Add(incomes[p])
	}
	for _, m := range core.PaymentMethods {
		s.ByMethod[m] = TotalByPaymentMethod(rs, m)
	}
	s.BalanceCents = s.TotalIncome.Cents - s.GrandTotal.Cents

	for _, c := range core.Categories {
		var total core.Money
		for _, p := range core.Payers {
			total = total.Add(TotalByCategory(rs, p, c))
		}
		if total.Cents == 0 {
			continue
		}
		s.ByCategory = append(s.ByCategory, CategoryShare{
			Category:        c,
			Total:           total,
			PercentOfIncome: PercentOfIncome(total, s.TotalIncome),
		})
	}
	return s
}
