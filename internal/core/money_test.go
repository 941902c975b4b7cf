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
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0.5", 50, true},
		{"7", 700, true},
		{"-12.34", -1234, true},
		{"+3,10", 310, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1a.20", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDecimalToCents(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseDecimalToCents(%q) expected error", tc.in)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCentsFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{10000, 1000000},
		{12.34, 1234},
		{12.345, 1235},
		{-570, -57000},
		{-0.005, -1},
		{0, 0},
	}
	for _, tc := range cases {
		if got := CentsFromFloat(tc.in); got != tc.want {
			t.Fatalf("CentsFromFloat(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12,34"},
		{123456789, "1.234.567,89"},
		{-57000, "-570,00"},
		{5, "0,05"},
		{0, "0,00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("Money{%d}.Format() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyAbs(t *testing.T) {
	if got := (Money{Cents: -100}).Abs(); got.Cents != 100 {
		t.Fatalf("Abs(-100) = %d", got.Cents)
	}
	if got := (Money{Cents: 100}).Abs(); got.Cents != 100 {
		t.Fatalf("Abs(100) = %d", got.Cents)
	}
}
