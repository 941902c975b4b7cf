package report

import (
	"sort"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// classify maps one record onto the credit/debit sides. The same rule
// backs buckets, category groups and summary totals so they reconcile
// exactly:
//
//   - cancelled records count toward neither side
//   - refunded records are debits at their magnitude
//   - otherwise the sign decides: positive amounts are credits,
//     negative ones debits at their magnitude
func classify(t core.Transaction) (credit, debit int64) {
	switch {
	case t.Status == core.StatusCancelled:
		return 0, 0
	case t.Status == core.StatusRefunded:
		return 0, t.Amount.Abs().Cents
	case t.Amount.Cents > 0:
		return t.Amount.Cents, 0
	default:
		return 0, -t.Amount.Cents
	}
}

// Totals are the aggregate scalars for a (usually pre-filtered)
// collection.
type Totals struct {
	Count     int
	Credits   core.Money
	Debits    core.Money
	Net       core.Money
	Fees      core.Money
	NetOfFees core.Money
}

// Summarize reduces the collection to its aggregate scalars. Fees are
// accumulated over counted (non-refunded, non-cancelled) records only.
func Summarize(txs []core.Transaction) Totals {
	var t Totals
	t.Count = len(txs)
	for _, tx := range txs {
		credit, debit := classify(tx)
		t.Credits.Cents += credit
		t.Debits.Cents += debit
		if tx.Status.Counted() {
			t.Fees.Cents += tx.Fee.Cents
		}
	}
	t.Net.Cents = t.Credits.Cents - t.Debits.Cents
	t.NetOfFees.Cents = t.Net.Cents - t.Fees.Cents
	return t
}

// CategoryTotal is one group of the category breakdown.
type CategoryTotal struct {
	Name  string
	Total core.Money
}

// CategoryBreakdown groups debit-side records by category, summing
// absolute amounts per group. Groups come back sorted by descending
// total, ties broken by name, so "top N" slices are deterministic.
func CategoryBreakdown(txs []core.Transaction) []CategoryTotal {
	sums := map[string]int64{}
	for _, t := range txs {
		_, debit := classify(t)
		if debit == 0 {
			continue
		}
		sums[t.Category] += debit
	}

	out := make([]CategoryTotal, 0, len(sums))
	for name, cents := range sums {
		out = append(out, CategoryTotal{Name: name, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopCategories returns at most n groups from the breakdown.
func TopCategories(txs []core.Transaction, n int) []CategoryTotal {
	all := CategoryBreakdown(txs)
	if n > 0 && len(all) > n {
		return all[:n]
	}
	return all
}
