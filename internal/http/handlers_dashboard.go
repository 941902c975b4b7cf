package http

import (
	"html/template"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/PutuPutra/finance-portal/internal/core"
	"github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/report"
)

// txRow is one rendered table row.
type txRow struct {
	ID            string
	Date          time.Time
	Description   string
	Amount        core.Money
	Negative      bool
	Type          string
	Category      string
	Status        string
	PaymentMethod string
}

type totalsView struct {
	Count     int
	Credits   core.Money
	Debits    core.Money
	Net       core.Money
	NetLoss   bool
	Fees      core.Money
	NetOfFees core.Money
}

type categoryRow struct {
	Name   string
	Amount core.Money
	Width  int
}

type dashboardData struct {
	Username  string
	Degraded  bool
	FetchedAt time.Time

	Start string
	End   string
	Query filterEcho

	Categories []string
	Statuses   []string
	Payments   []string
	Types      []string

	Totals     totalsView
	Rows       []txRow
	TopSpend   []categoryRow
}

// filterEcho echoes the active predicate values back into the form.
type filterEcho struct {
	Category string
	Status   string
	Payment  string
	Type     string
	Min      string
	Max      string
	Search   string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "dashboard.html")
}

// handleTransactions renders the table partial for HTMX refreshes.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "transactions.html")
}

// handleSummary renders the summary-cards partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, "summary.html")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, tmpl string) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := s.buildDashboardData(r)
	if err := s.templates.ExecuteTemplate(w, tmpl, data); err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard template execution failed",
			log.FieldOperation, log.OpRender,
			log.FieldError, err,
			"template", tmpl)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) buildDashboardData(r *http.Request) dashboardData {
	snap := s.loadSnapshot(r.Context())
	filter := parseFilter(r)
	filtered := filter.Apply(snap.Transactions)

	// Newest first for display; filtering does not order.
	rows := make([]core.Transaction, len(filtered))
	copy(rows, filtered)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })

	totals := report.Summarize(filtered)
	top := report.TopCategories(filtered, 6)

	data := dashboardData{
		Degraded:  snap.Degraded,
		FetchedAt: snap.FetchedAt,
		Query: filterEcho{
			Category: filter.Category,
			Status:   filter.Status,
			Payment:  filter.PaymentMethod,
			Type:     filter.Type,
			Search:   filter.Search,
		},
		Categories: report.Options(snap.Transactions, func(t core.Transaction) string { return t.Category }),
		Statuses:   report.Options(snap.Transactions, func(t core.Transaction) string { return string(t.Status) }),
		Payments:   report.Options(snap.Transactions, func(t core.Transaction) string { return t.PaymentMethod }),
		Types:      report.Options(snap.Transactions, func(t core.Transaction) string { return string(t.Type) }),
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
	if !filter.Start.IsZero() {
		data.Start = filter.Start.Format("2006-01-02")
	}
	if !filter.End.IsZero() {
		data.End = filter.End.Format("2006-01-02")
	}
	if filter.MinCents != nil {
		data.Query.Min = core.Money{Cents: *filter.MinCents}.Format()
	}
	if filter.MaxCents != nil {
		data.Query.Max = core.Money{Cents: *filter.MaxCents}.Format()
	}

	for _, t := range rows {
		data.Rows = append(data.Rows, txRow{
			ID:            t.ID,
			Date:          t.Date,
			Description:   t.Description,
			Amount:        t.Amount,
			Negative:      t.Amount.Cents < 0,
			Type:          string(t.Type),
			Category:      t.Category,
			Status:        string(t.Status),
			PaymentMethod: t.PaymentMethod,
		})
	}

	// Scale category bars against the largest group.
	var maxCents int64
	for _, c := range top {
		if c.Total.Cents > maxCents {
			maxCents = c.Total.Cents
		}
	}
	for _, c := range top {
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
		data.TopSpend = append(data.TopSpend, categoryRow{Name: c.Name, Amount: c.Total, Width: width})
	}

	return data
}

// handleNewTransaction serves the create form and accepts submissions.
// Accepted transactions are acknowledged and emitted on the audit feed;
// nothing is stored.
func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderNewForm(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderNewForm(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Username string
		Today    string
	}{Today: s.now().Format("2006-01-02")}
	if sess, ok := sessionFromContext(r.Context()); ok {
		data.Username = sess.Username
	}
	if err := s.templates.ExecuteTemplate(w, "transaction_form.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "form template execution failed", log.FieldError, err)
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	cents, err := core.ParseDecimalToCents(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	date := s.now()
	if v := sanitizeInput(r.Form.Get("date")); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			date = d
		}
	}

	in := core.NewTransactionInput{
		Description: sanitizeInput(r.Form.Get("description")),
		Amount:      core.Money{Cents: cents},
		Date:        date,
		Type:        core.TransactionType(sanitizeInput(r.Form.Get("type"))),
		Category:    sanitizeInput(r.Form.Get("category")),
		Status:      core.Status(sanitizeInput(r.Form.Get("status"))),
		Notes:       sanitizeInput(r.Form.Get("notes")),
		Reference:   sanitizeInput(r.Form.Get("reference")),
	}
	if err := in.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	tx := core.Transaction{
		ID:          "manual-" + uuid.NewString(),
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Status:      in.Status,
		OrderID:     in.Reference,
	}

	username := ""
	if sess, ok := sessionFromContext(r.Context()); ok {
		username = sess.Username
	}
	if err := s.publisher.PublishTransactionAccepted(r.Context(), tx, username); err != nil {
		// The portal acknowledges anyway; the audit feed is best effort.
		s.logger.ErrorContext(r.Context(), "audit publish failed",
			log.FieldOperation, log.OpPublish,
			log.FieldTxRef, tx.ID,
			log.FieldError, err)
	}

	s.logger.InfoContext(r.Context(), "transaction accepted",
		log.FieldOperation, log.OpCreate,
		log.FieldTxRef, tx.ID,
		log.FieldAmount, tx.Amount.Cents,
		log.FieldCategory, tx.Category,
		log.FieldUsername, username)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Transaction recorded (#` +
		template.HTMLEscapeString(tx.ID) + `): ` +
		template.HTMLEscapeString(tx.Description) + `, ` +
		template.HTMLEscapeString(formatRupiah(tx.Amount)) + `</div>`))
}
