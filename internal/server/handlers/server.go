// Package handlers exposes the application over HTTP: registration, login,
// the authenticated dashboard, the public portfolio pages, and the health
// report. Rendering is left to clients; page endpoints answer with their
// view models as JSON while keeping the original redirect-and-flash
// navigation semantics.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"devfolio/internal/logging"
	"devfolio/internal/server/config"
	"devfolio/internal/server/services"
)

type Server struct {
	addr          string
	logger        logging.Logger
	users         *services.UserService
	profiles      *services.ProfileService
	uploads       *services.UploadService
	health        *services.HealthService
	maxUploadSize int64
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	ps *services.ProfileService, up *services.UploadService, hs *services.HealthService) *Server {
	return &Server{
		addr:          cfg.ListenAddr,
		logger:        l.With("module", "http_server"),
		users:         us,
		profiles:      ps,
		uploads:       up,
		health:        hs,
		maxUploadSize: cfg.MaxUploadSize,
	}
}

// Handler assembles the route table and cross-cutting middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("POST /dashboard", s.requireAuth(s.handleDashboardSave))
	mux.HandleFunc("GET /portfolio/{email}", s.handlePortfolio)
	mux.HandleFunc("GET /health", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return s.logRequests(c.Handler(mux))
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
