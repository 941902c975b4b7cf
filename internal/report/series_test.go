package report

import (
	"testing"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

func TestDailySeriesCoversRangeInclusive(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	got := Series(nil, Daily, start, end)
	if len(got) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(got))
	}
	if got[0].Key != "2025-03-01" || got[4].Key != "2025-03-05" {
		t.Fatalf("unexpected endpoints: %s .. %s", got[0].Key, got[4].Key)
	}
	for _, b := range got {
		if b.Credit.Cents != 0 || b.Debit.Cents != 0 || b.Net.Cents != 0 {
			t.Fatalf("empty input should yield zero totals, got %+v", b)
		}
	}
}

func TestMonthlySeriesSpansMonths(t *testing.T) {
	start := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	got := Series(nil, Monthly, start, end)
	keys := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(got) != len(keys) {
		t.Fatalf("expected %d buckets, got %d", len(keys), len(got))
	}
	for i, k := range keys {
		if got[i].Key != k {
			t.Fatalf("bucket %d = %s, want %s", i, got[i].Key, k)
		}
	}
}

func TestSeriesAccumulation(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("a", day(2025, 3, 2), 1000),
		tx("b", day(2025, 3, 2), -400),
		tx("c", day(2025, 3, 3), 250),
		tx("outside", day(2025, 3, 9), 9999),
	}
	got := Series(txs, Daily, start, end)
	if got[0].Net.Cents != 0 {
		t.Fatalf("day 1 should be empty")
	}
	if got[1].Credit.Cents != 1000 || got[1].Debit.Cents != 400 || got[1].Net.Cents != 600 {
		t.Fatalf("day 2 totals wrong: %+v", got[1])
	}
	if got[2].Credit.Cents != 250 || got[2].Net.Cents != 250 {
		t.Fatalf("day 3 totals wrong: %+v", got[2])
	}
}

func TestSeriesOrderIndependentOfInput(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("late", day(2025, 3, 3), 300),
		tx("early", day(2025, 3, 1), 100),
	}
	got := Series(txs, Daily, start, end)
	if got[0].Credit.Cents != 100 || got[2].Credit.Cents != 300 {
		t.Fatalf("buckets not chronological: %+v", got)
	}
}

// Sum of per-bucket credits must equal the summary credit total for any
// partition of the range: nothing dropped, nothing double-counted.
func TestSeriesReconcilesWithTotals(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	var txs []core.Transaction
	amounts := []int64{1200, -300, 4500, -75, 999, -9999, 42}
	for i, cents := range amounts {
		txs = append(txs, tx(string(rune('a'+i)), start.AddDate(0, 0, i*12).Add(7*time.Hour), cents))
	}
	want := Summarize(txs)

	for _, period := range []Period{Daily, Monthly} {
		var credit, debit int64
		for _, b := range Series(txs, period, start, end) {
			credit += b.Credit.Cents
			debit += b.Debit.Cents
		}
		if credit != want.Credits.Cents {
			t.Fatalf("%s: bucket credits %d != total credits %d", period, credit, want.Credits.Cents)
		}
		if debit != want.Debits.Cents {
			t.Fatalf("%s: bucket debits %d != total debits %d", period, debit, want.Debits.Cents)
		}
	}
}

func TestSeriesInvertedRange(t *testing.T) {
	start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := Series(nil, Daily, start, end); got != nil {
		t.Fatalf("expected nil for inverted range, got %d buckets", len(got))
	}
}

func TestBucketLabel(t *testing.T) {
	b := Bucket{Start: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)}
	if got := b.Label(Daily); got != "Mar 2" {
		t.Fatalf("daily label = %q", got)
	}
	if got := b.Label(Monthly); got != "Mar 2025" {
		t.Fatalf("monthly label = %q", got)
	}
}
