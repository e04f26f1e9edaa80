package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"devfolio/internal/common"
	"devfolio/internal/server/models"
	"devfolio/internal/server/repositories/profiles"
	"devfolio/internal/server/services"
)

type profileDTO struct {
	Bio         string `json:"bio"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
	Projects    string `json:"projects"`
	ImageURL    string `json:"image_url"`
	ResumeURL   string `json:"resume_url"`
	UpdatedAt   string `json:"updated_at"`
}

func toProfileDTO(p *models.Profile) *profileDTO {
	if p == nil {
		return nil
	}
	return &profileDTO{
		Bio:         p.Bio,
		GithubURL:   p.GithubURL,
		LinkedinURL: p.LinkedinURL,
		Projects:    p.Projects,
		ImageURL:    p.ImageURL,
		ResumeURL:   p.ResumeURL,
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// handleDashboard renders the authenticated user's profile. A user without a
// profile gets a null profile; nothing is created on read.
// GET /dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	profile, err := s.profiles.Get(r.Context(), session.UserID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(r.Context(), "dashboard load failed", "error", err)
		s.writeMessage(w, r, "Failed to load profile")
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]any{
		"email":   session.Email,
		"profile": toProfileDTO(profile),
		"message": popFlash(w, r),
	})
}

// handleDashboardSave persists one dashboard save. Uploads run first, one
// attempt each; any upload failure aborts the save before the profile row is
// touched, so a failed URL is never persisted. The write itself is a single
// upsert.
// POST /dashboard
func (s *Server) handleDashboardSave(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	// Cap the whole request body; headroom covers multipart framing and the
	// text fields around the file parts.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		setFlash(w, "Uploaded file is too large")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	upd := &profiles.Update{
		UserID:      session.UserID,
		Bio:         r.PostFormValue("bio"),
		GithubURL:   r.PostFormValue("github_url"),
		LinkedinURL: r.PostFormValue("linkedin_url"),
		Projects:    r.PostFormValue("projects"),
	}

	imageURL, ok := s.uploadFormFile(w, r, "image", services.FolderImages, session.UserID)
	if !ok {
		return
	}
	upd.ImageURL = imageURL

	resumeURL, ok := s.uploadFormFile(w, r, "resume", services.FolderResumes, session.UserID)
	if !ok {
		return
	}
	upd.ResumeURL = resumeURL

	if _, err := s.profiles.Save(r.Context(), upd); err != nil {
		// A confirmed upload followed by a failed write leaves an orphaned
		// object in the bucket; accepted, the URL was never persisted.
		s.logger.Error(r.Context(), "profile save failed", "error", err)
		setFlash(w, "Profile update failed")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	setFlash(w, "Profile updated successfully!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// uploadFormFile uploads the named multipart file when one was supplied.
// Returns (nil, true) when the field is absent, (url, true) on success, and
// (nil, false) after writing the failure response.
func (s *Server) uploadFormFile(w http.ResponseWriter, r *http.Request, field, folder string, userID int64) (*string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		s.logger.Error(r.Context(), "reading form file failed", "field", field, "error", err)
		setFlash(w, "Invalid upload")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return nil, false
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, true
	}

	url, err := s.uploadFile(r, file, header, folder, userID)
	if err != nil {
		s.logger.Error(r.Context(), "upload failed", "field", field, "folder", folder, "error", err)
		setFlash(w, uploadFailureMessage(field, err))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return nil, false
	}

	return &url, true
}

func (s *Server) uploadFile(r *http.Request, file multipart.File, header *multipart.FileHeader, folder string, userID int64) (string, error) {
	contentType := header.Header.Get("Content-Type")
	return s.uploads.Upload(r.Context(), file, header.Size, header.Filename, contentType, folder, userID)
}

func uploadFailureMessage(field string, err error) string {
	switch {
	case errors.Is(err, common.ErrorStorageNotConfigured):
		return "File uploads are not available"
	case errors.Is(err, common.ErrorFileTooLarge):
		return "Uploaded file is too large"
	default:
		if field == "resume" {
			return "Resume upload failed"
		}
		return "Image upload failed"
	}
}
