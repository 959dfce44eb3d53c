package core

import "time"

// MonthYear is a calendar month bucket used for filtering and for placing
// installments. Month is always in 1..12 after NormalizeMonthYear.
type MonthYear struct {
	Month int
	Year  int
}

// NormalizeMonthYear folds an out-of-range month into 1..12, rolling the
// year forward or backward as needed. Any integer month is accepted:
//
//	NormalizeMonthYear(13, 2024) -> (1, 2025)
//	NormalizeMonthYear(0, 2024)  -> (12, 2023)
//	NormalizeMonthYear(25, 2024) -> (1, 2026)
func NormalizeMonthYear(month, year int) (int, int) {
	for month > 12 {
		month -= 12
		year++
	}
	for month <= 0 {
		month += 12
		year--
	}
	return month, year
}

// Normalize returns the canonical form of the bucket.
func (my MonthYear) Normalize() MonthYear {
	m, y := NormalizeMonthYear(my.Month, my.Year)
	return MonthYear{Month: m, Year: y}
}

// MonthYearOf extracts the month bucket of a point in time.
func MonthYearOf(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// FirstDay returns midnight UTC on the first day of the bucket's month,
// the synthesized date used for expenses entered against a past or future
// month.
func (my MonthYear) FirstDay() time.Time {
	n := my.Normalize()
	return time.Date(n.Year, time.Month(n.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the bucket. A zero time is never
// contained.
func (my MonthYear) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	n := my.Normalize()
	return int(t.Month()) == n.Month && t.Year() == n.Year
}
