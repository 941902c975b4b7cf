package synthetic

import (
	"context"
	"testing"
	"time"

	"github.com/PutuPutra/finance-portal/internal/report"
)

func TestFetchProducesRequestedCount(t *testing.T) {
	s := New(50, 60)
	txs, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 50 {
		t.Fatalf("expected 50 records, got %d", len(txs))
	}

	seen := map[string]struct{}{}
	cutoff := time.Now().AddDate(0, 0, -61)
	for _, tx := range txs {
		if _, dup := seen[tx.ID]; dup {
			t.Fatalf("duplicate id %s", tx.ID)
		}
		seen[tx.ID] = struct{}{}
		if tx.Date.Before(cutoff) {
			t.Fatalf("record %s dated %v outside trailing window", tx.ID, tx.Date)
		}
		if tx.Amount.Cents == 0 {
			t.Fatalf("record %s has zero amount", tx.ID)
		}
	}
}

// Generated amounts sit in [-5000,-100] or [1000,11000) whole units, so
// an unconstrained filter returns everything and a zero lower bound
// returns exactly the positive subset.
func TestFetchFilterScenario(t *testing.T) {
	s := New(50, 60)
	txs, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := (report.Filter{}).Apply(txs); len(got) != 50 {
		t.Fatalf("unconstrained filter: expected 50, got %d", len(got))
	}

	min := int64(0)
	positives := 0
	for _, tx := range txs {
		if tx.Amount.Cents > 0 {
			positives++
		}
	}
	got := (report.Filter{MinCents: &min}).Apply(txs)
	if len(got) != positives {
		t.Fatalf("min=0 filter: expected %d positive records, got %d", positives, len(got))
	}
	for _, tx := range got {
		if tx.Amount.Cents < 0 {
			t.Fatalf("negative amount %d passed min=0 filter", tx.Amount.Cents)
		}
	}
}

func TestFetchAmountRanges(t *testing.T) {
	s := New(200, 60)
	txs, _ := s.Fetch(context.Background())
	for _, tx := range txs {
		c := tx.Amount.Cents
		if c > 0 && (c < 100000 || c >= 1100000) {
			t.Fatalf("income amount %d outside [1000,11000) units", c)
		}
		if c < 0 && (c > -10000 || c < -510000) {
			t.Fatalf("expense amount %d outside [-5100,-100] units", c)
		}
	}
}
