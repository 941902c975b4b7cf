// Package report implements the transaction aggregator: filtering,
// time-bucketed series and category/summary reductions over normalized
// transaction collections. Everything here is pure and side-effect free;
// callers inject "now" where a default date range is needed.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// Filter is a set of optional predicates combined with logical AND.
// Zero values mean "no constraint".
type Filter struct {
	Start time.Time
	End   time.Time

	Category      string
	Status        string
	PaymentMethod string
	Type          string

	MinCents *int64
	MaxCents *int64

	// Search is matched case-insensitively against ID, description,
	// product name and device ID.
	Search string
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() &&
		f.Category == "" && f.Status == "" && f.PaymentMethod == "" && f.Type == "" &&
		f.MinCents == nil && f.MaxCents == nil && f.Search == ""
}

// Apply returns the transactions satisfying every active predicate,
// preserving input order. The date range is inclusive at both ends; the
// upper bound extends to the end of its calendar day.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	if f.IsZero() {
		return txs
	}

	var end time.Time
	if !f.End.IsZero() {
		end = endOfDay(f.End)
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if !f.Start.IsZero() && t.Date.Before(f.Start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.PaymentMethod != "" && t.PaymentMethod != f.PaymentMethod {
			continue
		}
		if f.Type != "" && string(t.Type) != f.Type {
			continue
		}
		if f.MinCents != nil && t.Amount.Cents < *f.MinCents {
			continue
		}
		if f.MaxCents != nil && t.Amount.Cents > *f.MaxCents {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t core.Transaction, term string) bool {
	return strings.Contains(strings.ToLower(t.ID), term) ||
		strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.ProductName), term) ||
		strings.Contains(strings.ToLower(t.DeviceID), term)
}

// Options lists the distinct values of a field across a collection,
// sorted, for populating filter dropdowns.
func Options(txs []core.Transaction, field func(core.Transaction) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range txs {
		v := field(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// DefaultRange returns the range used when the caller supplies none:
// one month back through today.
func DefaultRange(now time.Time) (start, end time.Time) {
	return now.AddDate(0, -1, 0), now
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
