package report

import (
	"testing"

	"github.com/PutuPutra/finance-portal/internal/core"
)

func withFee(cents int64) func(*core.Transaction) {
	return func(t *core.Transaction) { t.Fee = core.Money{Cents: cents} }
}

func TestSummarize(t *testing.T) {
	txs := []core.Transaction{
		tx("1", day(2025, 1, 1), 10000, withFee(70)),
		tx("2", day(2025, 1, 2), -2500),
		tx("3", day(2025, 1, 3), 4000, withFee(30)),
		tx("4", day(2025, 1, 4), -1500, withStatus(core.StatusRefunded), withFee(999)),
	}
	got := Summarize(txs)
	if got.Count != 4 {
		t.Fatalf("count = %d", got.Count)
	}
	if got.Credits.Cents != 14000 {
		t.Fatalf("credits = %d", got.Credits.Cents)
	}
	if got.Debits.Cents != 4000 {
		t.Fatalf("debits = %d", got.Debits.Cents)
	}
	if got.Net.Cents != 10000 {
		t.Fatalf("net = %d", got.Net.Cents)
	}
	// refunded record's fee must not count
	if got.Fees.Cents != 100 {
		t.Fatalf("fees = %d", got.Fees.Cents)
	}
	if got.NetOfFees.Cents != 9900 {
		t.Fatalf("net of fees = %d", got.NetOfFees.Cents)
	}
}

func TestSummarizeStatusClassification(t *testing.T) {
	txs := []core.Transaction{
		// vendor-style refund: positive magnitude, refunded status
		tx("r", day(2025, 1, 1), 2000, withStatus(core.StatusRefunded)),
		// cancelled records count toward neither side
		tx("c", day(2025, 1, 2), 5000, withStatus(core.StatusCancelled)),
		tx("s", day(2025, 1, 3), 1000),
	}
	got := Summarize(txs)
	if got.Credits.Cents != 1000 {
		t.Fatalf("credits = %d, want 1000", got.Credits.Cents)
	}
	if got.Debits.Cents != 2000 {
		t.Fatalf("debits = %d, want 2000", got.Debits.Cents)
	}
	if got.Net.Cents != -1000 {
		t.Fatalf("net = %d, want -1000", got.Net.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Count != 0 || got.Net.Cents != 0 {
		t.Fatalf("empty summary not zero: %+v", got)
	}
}

func TestCategoryBreakdownSortedDescending(t *testing.T) {
	txs := []core.Transaction{
		tx("1", day(2025, 1, 1), -100, withCategory("Travel")),
		tx("2", day(2025, 1, 2), -900, withCategory("Rent")),
		tx("3", day(2025, 1, 3), -400, withCategory("Travel")),
		tx("4", day(2025, 1, 4), 700, withCategory("Salary")), // credit: excluded
	}
	got := CategoryBreakdown(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].Name != "Rent" || got[0].Total.Cents != 900 {
		t.Fatalf("top group wrong: %+v", got[0])
	}
	if got[1].Name != "Travel" || got[1].Total.Cents != 500 {
		t.Fatalf("second group wrong: %+v", got[1])
	}
}

// Sum of all per-category totals must equal the debit summary scalar.
func TestCategoryBreakdownReconcilesWithDebits(t *testing.T) {
	txs := []core.Transaction{
		tx("1", day(2025, 1, 1), -100, withCategory("A")),
		tx("2", day(2025, 1, 2), -250, withCategory("B")),
		tx("3", day(2025, 1, 3), -42, withCategory("A")),
		tx("4", day(2025, 1, 4), 9000, withCategory("C")),
	}
	var sum int64
	for _, g := range CategoryBreakdown(txs) {
		sum += g.Total.Cents
	}
	if want := Summarize(txs).Debits.Cents; sum != want {
		t.Fatalf("category sum %d != total debits %d", sum, want)
	}
}

func TestCategoryBreakdownTieBrokenByName(t *testing.T) {
	txs := []core.Transaction{
		tx("1", day(2025, 1, 1), -100, withCategory("Zeta")),
		tx("2", day(2025, 1, 2), -100, withCategory("Alpha")),
	}
	got := CategoryBreakdown(txs)
	if got[0].Name != "Alpha" || got[1].Name != "Zeta" {
		t.Fatalf("tie order wrong: %+v", got)
	}
}

func TestTopCategories(t *testing.T) {
	txs := []core.Transaction{
		tx("1", day(2025, 1, 1), -300, withCategory("A")),
		tx("2", day(2025, 1, 2), -200, withCategory("B")),
		tx("3", day(2025, 1, 3), -100, withCategory("C")),
	}
	got := TopCategories(txs, 2)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("top 2 wrong: %+v", got)
	}
	if got := TopCategories(txs, 0); len(got) != 3 {
		t.Fatalf("n=0 should return all, got %d", len(got))
	}
}
