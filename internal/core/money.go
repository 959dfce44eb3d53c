// Package core holds the domain types of the household ledger: expense
// records, the category/payer/payment taxonomies, money amounts in cents,
// and month/year normalization.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in centavos. Keeping cents as int64 makes sums and
// installment splits exact; float formatting only happens at display time.
type Money struct {
	Cents int64
}

// Validate rejects negative amounts. Zero is a valid amount: a record may
// register a purchase that cost nothing this month (e.g. a waived bill).
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Reais returns the amount as a float for display purposes only.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimals and a dot separator, e.g.
// "123.45". This is the form used in CSV rows.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// SplitEven divides the amount into n near-equal shares. Every share gets
// Cents/n and the division remainder goes to the final share, so the shares
// always sum back to the original amount exactly.
func (m Money) SplitEven(n int) []Money {
	if n <= 0 {
		return nil
	}
	base := m.Cents / int64(n)
	rem := m.Cents % int64(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money{Cents: base}
	}
	shares[n-1].Cents += rem
	return shares
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Negative values and malformed input are rejected; "0" is fine.
//
//	ParseDecimalToCents("12.34") -> 1234
//	ParseDecimalToCents("12,346") -> 1235
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}
