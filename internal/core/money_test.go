package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0", 0, true},
		{"0.5", 50, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{".99", 99, true},
		{"", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, got, tc.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 100}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero amount should be valid, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestMoneySplitEven(t *testing.T) {
	cases := []struct {
		cents int64
		n     int
		want  []int64
	}{
		{30000, 3, []int64{10000, 10000, 10000}},
		{10000, 3, []int64{3333, 3333, 3334}},
		{1, 3, []int64{0, 0, 1}},
		{500, 1, []int64{500}},
	}
	for i, tc := range cases {
		shares := (Money{Cents: tc.cents}).SplitEven(tc.n)
		if len(shares) != len(tc.want) {
			t.Fatalf("case %d: got %d shares, want %d", i, len(shares), len(tc.want))
		}
		var sum int64
		for j, s := range shares {
			if s.Cents != tc.want[j] {
				t.Fatalf("case %d share %d: got %d, want %d", i, j, s.Cents, tc.want[j])
			}
			sum += s.Cents
		}
		if sum != tc.cents {
			t.Fatalf("case %d: shares sum to %d, want %d", i, sum, tc.cents)
		}
	}
	if got := (Money{Cents: 100}).SplitEven(0); got != nil {
		t.Fatal("SplitEven(0) should return nil")
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{0, "0.00"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}
