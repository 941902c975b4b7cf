package report

import (
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// Period selects the calendar unit a series is bucketed by.
type Period string

const (
	Daily   Period = "daily"
	Monthly Period = "monthly"
)

// Bucket is one calendar unit of a series. Credit and Debit accumulate
// per the shared classification rule; Net is Credit - Debit.
type Bucket struct {
	Key    string // "2006-01-02" for daily, "2006-01" for monthly
	Start  time.Time
	Credit core.Money
	Debit  core.Money
	Net    core.Money
}

// Series buckets the transactions over [start, end] inclusive of both
// endpoints. Every calendar unit in the range gets a bucket, zero
// totals included, emitted in chronological order regardless of input
// order. Records whose bucket key falls outside the range are dropped.
func Series(txs []core.Transaction, period Period, start, end time.Time) []Bucket {
	if end.Before(start) {
		return nil
	}

	keyOf := dailyKey
	next := nextDay
	align := dateOnly
	if period == Monthly {
		keyOf = monthlyKey
		next = nextMonth
		align = monthStart
	}

	var buckets []Bucket
	index := map[string]int{}
	for cur, stop := align(start), align(end); !cur.After(stop); cur = next(cur) {
		k := keyOf(cur)
		index[k] = len(buckets)
		buckets = append(buckets, Bucket{Key: k, Start: cur})
	}

	for _, t := range txs {
		i, ok := index[keyOf(t.Date)]
		if !ok {
			continue
		}
		credit, debit := classify(t)
		buckets[i].Credit.Cents += credit
		buckets[i].Debit.Cents += debit
	}

	for i := range buckets {
		buckets[i].Net.Cents = buckets[i].Credit.Cents - buckets[i].Debit.Cents
	}
	return buckets
}

// Label renders the bucket key for chart axes: "Jan 2" for daily
// buckets, "Jan 2006" for monthly ones.
func (b Bucket) Label(period Period) string {
	if period == Monthly {
		return b.Start.Format("Jan 2006")
	}
	return b.Start.Format("Jan 2")
}

func dailyKey(t time.Time) string   { return t.Format("2006-01-02") }
func monthlyKey(t time.Time) string { return t.Format("2006-01") }

func nextDay(t time.Time) time.Time   { return t.AddDate(0, 0, 1) }
func nextMonth(t time.Time) time.Time { return t.AddDate(0, 1, 0) }

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
