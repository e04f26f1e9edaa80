package models

import "time"

// Profile is the editable portfolio content owned by exactly one user.
// Projects holds a comma-delimited list of project names; ImageURL and
// ResumeURL point at publicly readable objects in the storage bucket and
// are empty until the first successful upload.
type Profile struct {
	ID          int64
	UserID      int64
	Bio         string
	GithubURL   string
	LinkedinURL string
	Projects    string
	ImageURL    string
	ResumeURL   string
	UpdatedAt   time.Time
}
