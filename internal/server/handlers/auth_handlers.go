package handlers

import (
	"errors"
	"net/http"

	"devfolio/internal/common"
)

// handleRegisterPage answers the registration page model.
// GET /register
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"page":    "register",
		"message": popFlash(w, r),
	})
}

// handleRegister creates a new user from a form-encoded email and password.
// POST /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeMessage(w, r, "Invalid form data")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		s.writeMessage(w, r, "Email and password are required")
		return
	}

	if _, err := s.users.Register(r.Context(), email, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.writeMessage(w, r, "Email already registered")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err)
		s.writeMessage(w, r, "Registration failed")
		return
	}

	setFlash(w, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLoginPage answers the login page model.
// GET /login
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"page":    "login",
		"message": popFlash(w, r),
	})
}

// handleLogin verifies credentials and establishes the session cookie.
// The failure message never distinguishes an unknown email from a wrong
// password.
// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeMessage(w, r, "Invalid form data")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := s.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Error(r.Context(), "login failed", "error", err)
		}
		s.writeMessage(w, r, "Invalid email or password")
		return
	}

	token, err := s.users.CreateSession(user)
	if err != nil {
		s.logger.Error(r.Context(), "session creation failed", "error", err)
		s.writeMessage(w, r, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.users.SessionTTL().Seconds()),
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout tears the session down.
// POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	setFlash(w, "Logged out successfully")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
