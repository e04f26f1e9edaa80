package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"devfolio/internal/server/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

const sessionCookie = "session"

// SessionFromContext extracts the authenticated session from the request
// context. Returns nil for anonymous requests.
func SessionFromContext(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey).(*auth.Session)
	return session
}

// requireAuth gates mutation endpoints. It reads the session cookie,
// validates the token, and injects the session into the request context.
// Anonymous callers are sent to the login page, not handed an error.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}

		session, err := s.users.ValidateSession(cookie.Value)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, session)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	setFlash(w, "Please login to access the dashboard")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// logRequests tags every request with an id and logs method, path, status
// and latency once the handler returns.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request processed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"latency", time.Since(start),
		)
	})
}
