package http

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/report"
)

type reportsData struct {
	Username string
	Degraded bool

	Period string
	Start  string
	End    string

	Totals     totalsView
	Categories []categoryRow
}

// handleReports renders the reports page: period toggle, summary and
// the chart container that pulls its series from the data endpoint.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snap := s.loadSnapshot(r.Context())
	filter := parseFilter(r)
	// Resolve the default range into the filter itself so the summary,
	// the breakdown and the series all cover the same records.
	filter.Start, filter.End = s.filterRange(filter)
	filtered := filter.Apply(snap.Transactions)

	totals := report.Summarize(filtered)
	breakdown := report.CategoryBreakdown(filtered)

	data := reportsData{
		Degraded: snap.Degraded,
		Period:   parsePeriod(r),
		Start:    filter.Start.Format("2006-01-02"),
		End:      filter.End.Format("2006-01-02"),
		Totals: totalsView{
			Count:     totals.Count,
			Credits:   totals.Credits,
			Debits:    totals.Debits,
			Net:       totals.Net,
			NetLoss:   totals.Net.Cents < 0,
			Fees:      totals.Fees,
			NetOfFees: totals.NetOfFees,
		},
	}
	if sess, ok := sessionFromContext(r.Context()); ok {
		data.Username = sess.Username
	}

	var maxCents int64
	for _, c := range breakdown {
		if c.Total.Cents > maxCents {
			maxCents = c.Total.Cents
		}
	}
	for _, c := range breakdown {
		width := 0
		if maxCents > 0 && c.Total.Cents > 0 {
			width = int((c.Total.Cents*100 + maxCents/2) / maxCents)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Categories = append(data.Categories, categoryRow{Name: c.Name, Amount: c.Total, Width: width})
	}

	if err := s.templates.ExecuteTemplate(w, "reports.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "reports template execution failed",
			log.FieldOperation, log.OpRender,
			log.FieldError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// seriesResponse is the chart feed: parallel arrays in bucket order,
// amounts in minor units.
type seriesResponse struct {
	Period  string   `json:"period"`
	Labels  []string `json:"labels"`
	Credits []int64  `json:"credits"`
	Debits  []int64  `json:"debits"`
	Net     []int64  `json:"net"`
}

func (s *Server) handleReportData(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(r.Context())
	if snap.Degraded {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "transaction source unavailable"})
		return
	}

	filter := parseFilter(r)
	filter.Start, filter.End = s.filterRange(filter)
	filtered := filter.Apply(snap.Transactions)

	period := report.Daily
	if parsePeriod(r) == string(report.Monthly) {
		period = report.Monthly
	}

	buckets := report.Series(filtered, period, filter.Start, filter.End)

	resp := seriesResponse{
		Period:  string(period),
		Labels:  make([]string, 0, len(buckets)),
		Credits: make([]int64, 0, len(buckets)),
		Debits:  make([]int64, 0, len(buckets)),
		Net:     make([]int64, 0, len(buckets)),
	}
	for _, b := range buckets {
		resp.Labels = append(resp.Labels, b.Label(period))
		resp.Credits = append(resp.Credits, b.Credit.Cents)
		resp.Debits = append(resp.Debits, b.Debit.Cents)
		resp.Net = append(resp.Net, b.Net.Cents)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.ErrorContext(r.Context(), "series encode failed", log.FieldError, err)
	}
}

// handleExport streams the filtered collection as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(r.Context())
	filter := parseFilter(r)
	filtered := filter.Apply(snap.Transactions)

	filename := "transactions-" + s.now().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "date", "description", "amount", "type", "category", "status", "payment_method", "fee", "order_id"})
	for _, t := range filtered {
		_ = cw.Write([]string{
			t.ID,
			t.Date.Format("2006-01-02 15:04:05"),
			t.Description,
			centsToDecimal(t.Amount.Cents),
			string(t.Type),
			t.Category,
			string(t.Status),
			t.PaymentMethod,
			centsToDecimal(t.Fee.Cents),
			t.OrderID,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.ErrorContext(r.Context(), "csv export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
		return
	}

	s.logger.InfoContext(r.Context(), "csv export",
		log.FieldOperation, log.OpExport,
		log.FieldTxCount, len(filtered))
}

func parsePeriod(r *http.Request) string {
	if strings.TrimSpace(r.URL.Query().Get("period")) == string(report.Monthly) {
		return string(report.Monthly)
	}
	return string(report.Daily)
}

// centsToDecimal renders minor units as a plain decimal, "-123.45".
func centsToDecimal(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	out := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + out
	}
	return out
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
