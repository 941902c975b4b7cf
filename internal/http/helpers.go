package http

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/PutuPutra/finance-portal/internal/core"
	"github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/report"
	"github.com/PutuPutra/finance-portal/internal/source"
)

// snapshot is one fetched transaction collection plus the outcome of
// the fetch, so views can tell "no data" apart from "fetch failed".
type snapshot struct {
	Transactions []core.Transaction
	Degraded     bool
	FetchedAt    time.Time
}

// loadSnapshot returns the current transaction collection, serving
// from the short-lived cache when fresh. Fetch failures come back as a
// degraded snapshot with an empty collection; the failure is logged
// and counted but the page still renders.
func (s *Server) loadSnapshot(ctx context.Context) snapshot {
	key := s.src.Mode()
	if txs, ok := s.snapshotCache.Get(key); ok {
		cacheHits.WithLabelValues("hit").Inc()
		return snapshot{Transactions: txs, FetchedAt: s.now()}
	}
	cacheHits.WithLabelValues("miss").Inc()

	cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	start := time.Now()
	txs, err := s.src.Fetch(cctx)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if source.IsFetchError(err) {
			outcome = "fetch_error"
		}
		fetchesTotal.WithLabelValues(key, outcome).Inc()
		s.logger.ErrorContext(ctx, "transaction fetch failed",
			log.FieldOperation, log.OpFetch,
			log.FieldSourceMode, key,
			log.FieldError, err)
		return snapshot{Degraded: true, FetchedAt: s.now()}
	}

	fetchesTotal.WithLabelValues(key, "ok").Inc()
	s.snapshotCache.Set(key, txs)
	return snapshot{Transactions: txs, FetchedAt: s.now()}
}

// parseFilter builds the aggregator filter from query parameters.
// Empty or malformed values mean "no constraint".
func parseFilter(r *http.Request) report.Filter {
	q := r.URL.Query()
	var f report.Filter

	if v := strings.TrimSpace(q.Get("start")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			f.Start = d
		}
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			f.End = d
		}
	}

	f.Category = strings.TrimSpace(q.Get("category"))
	f.Status = strings.TrimSpace(q.Get("status"))
	f.PaymentMethod = strings.TrimSpace(q.Get("payment"))
	f.Type = strings.TrimSpace(q.Get("type"))
	f.Search = strings.TrimSpace(q.Get("q"))

	if v := strings.TrimSpace(q.Get("min")); v != "" {
		if cents, err := core.ParseDecimalToCents(v); err == nil {
			f.MinCents = &cents
		}
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		if cents, err := core.ParseDecimalToCents(v); err == nil {
			f.MaxCents = &cents
		}
	}

	return f
}

// filterRange resolves the date range used for bucketing: the filter's
// own bounds when supplied, one month back through today otherwise.
func (s *Server) filterRange(f report.Filter) (start, end time.Time) {
	start, end = f.Start, f.End
	if start.IsZero() || end.IsZero() {
		defStart, defEnd := report.DefaultRange(s.now())
		if start.IsZero() {
			start = defStart
		}
		if end.IsZero() {
			end = defEnd
		}
	}
	return start, end
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rupiah":    formatRupiah,
		"shortDate": func(t time.Time) string { return t.Format("02 Jan 2006") },
		"dateTime":  func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
		"isoDate":   func(t time.Time) string { return t.Format("2006-01-02") },
	}
}

// formatRupiah renders minor units as an IDR amount, "Rp 1.234,56".
func formatRupiah(m core.Money) string {
	if m.Cents < 0 {
		return "-Rp " + m.Abs().Format()
	}
	return "Rp " + m.Format()
}
