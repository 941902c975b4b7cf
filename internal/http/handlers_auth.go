package http

import (
	"errors"
	"net/http"

	"github.com/PutuPutra/finance-portal/internal/auth"
	"github.com/PutuPutra/finance-portal/internal/log"
)

// handleLoginPage serves the login view at the root path. Requests that
// already carry a valid session are bounced to the dashboard.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if _, ok := s.currentSession(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	s.renderLogin(w, r, "")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderLogin(w, r, "Invalid request format.")
		return
	}

	creds := auth.Credentials{
		Username: sanitizeInput(r.Form.Get("username")),
		Password: r.Form.Get("password"),
	}

	sess, err := s.authenticator.Verify(creds)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.ErrorContext(r.Context(), "authenticator error",
				log.FieldOperation, log.OpLogin,
				log.FieldError, err)
		}
		w.WriteHeader(http.StatusUnauthorized)
		s.renderLogin(w, r, "Invalid username or password.")
		return
	}

	loginAttempts.WithLabelValues("success").Inc()
	s.logger.InfoContext(r.Context(), "login succeeded",
		log.FieldOperation, log.OpLogin,
		log.FieldUsername, sess.Username)

	s.setSessionCookie(w, sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := s.currentSession(r); ok {
		s.logger.InfoContext(r.Context(), "logout",
			log.FieldOperation, log.OpLogout,
			log.FieldUsername, sess.Username)
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Error string
	}{Error: errMsg}
	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "login template execution failed", log.FieldError, err)
	}
}
