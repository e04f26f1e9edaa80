package handlers

import (
	"errors"
	"net/http"
	"time"

	"devfolio/internal/common"
)

// handleIndex lists the users that have filled a profile. A database failure
// logs the cause and renders an empty list with a message, never a crash.
// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	type userDTO struct {
		Email     string `json:"email"`
		CreatedAt string `json:"created_at"`
	}

	users, err := s.users.ListWithProfiles(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing users failed", "error", err)
		s.writeJSON(w, r, http.StatusOK, map[string]any{
			"users":   []userDTO{},
			"message": "Could not load users",
		})
		return
	}

	list := make([]userDTO, 0, len(users))
	for _, u := range users {
		list = append(list, userDTO{
			Email:     u.Email,
			CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"users":   list,
		"message": popFlash(w, r),
	})
}

// handlePortfolio serves the public read-only portfolio view. A missing user
// and a user without a profile are indistinguishable here.
// GET /portfolio/{email}
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	view, err := s.profiles.Portfolio(r.Context(), email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(r.Context(), "portfolio load failed", "error", err)
		}
		setFlash(w, "Portfolio not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"email":        view.Email,
		"bio":          view.Profile.Bio,
		"github_url":   view.Profile.GithubURL,
		"linkedin_url": view.Profile.LinkedinURL,
		"projects":     view.Projects,
		"image_url":    view.Profile.ImageURL,
		"resume_url":   view.Profile.ResumeURL,
	})
}
