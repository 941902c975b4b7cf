// Package http wires the portal's routes: the login gate, the dashboard
// views and partials, the report data feed, and the operational
// endpoints. Pages are server-rendered from embedded templates with
// HTMX driving partial refreshes.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PutuPutra/finance-portal/internal/audit"
	"github.com/PutuPutra/finance-portal/internal/auth"
	"github.com/PutuPutra/finance-portal/internal/cache"
	"github.com/PutuPutra/finance-portal/internal/core"
	"github.com/PutuPutra/finance-portal/internal/log"
	"github.com/PutuPutra/finance-portal/internal/source"
	appweb "github.com/PutuPutra/finance-portal/web"
)

const sessionCookie = "portal_session"

// Deps collects everything the server needs. Publisher may be nil; it
// is replaced with a no-op.
type Deps struct {
	Authenticator auth.Authenticator
	Tokens        *auth.TokenCodec
	Source        source.Source
	Publisher     audit.Publisher
	Logger        *log.Logger
	CacheTTL      time.Duration
}

type Server struct {
	http.Server
	templates *template.Template
	logger    *log.Logger

	authenticator auth.Authenticator
	tokens        *auth.TokenCodec
	src           source.Source
	publisher     audit.Publisher

	rateLimiter   *rateLimiter
	snapshotCache *cache.LRUCache[[]core.Transaction]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
	now          func() time.Time
}

// NewServer configures routes and templates, returning a ready-to-run
// server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = audit.Noop{}
	}
	cacheTTL := deps.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger:        logger.WithComponent(log.ComponentHTTP),
		authenticator: deps.Authenticator,
		tokens:        deps.Tokens,
		src:           deps.Source,
		publisher:     publisher,
		rateLimiter:   newRateLimiter(30),
		snapshotCache: cache.NewLRUCache[[]core.Transaction](8, cacheTTL),
		cacheManager:  cache.NewManager(),
		now:           time.Now,
	}

	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.StartCleanup(time.Minute)

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Error("failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Error("failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleLoginPage))
	mux.HandleFunc("/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("/logout", s.withSecurityHeaders(s.handleLogout))

	mux.HandleFunc("/dashboard", s.withSecurityHeaders(s.requireSession(s.handleDashboard)))
	mux.HandleFunc("/dashboard/transactions", s.withSecurityHeaders(s.requireSession(s.handleTransactions)))
	mux.HandleFunc("/dashboard/transactions/new", s.withSecurityHeaders(s.requireSession(s.handleNewTransaction)))
	mux.HandleFunc("/dashboard/transactions/export", s.withSecurityHeaders(s.requireSession(s.handleExport)))
	mux.HandleFunc("/dashboard/summary", s.withSecurityHeaders(s.requireSession(s.handleSummary)))
	mux.HandleFunc("/dashboard/reports", s.withSecurityHeaders(s.requireSession(s.handleReports)))
	mux.HandleFunc("/dashboard/reports/data", s.withSecurityHeaders(s.requireSession(s.handleReportData)))

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil || s.src == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
