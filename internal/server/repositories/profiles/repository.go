// Package profiles persists the one-to-one portfolio record per user.
package profiles

import (
	"context"

	"devfolio/internal/server/models"
)

// Update carries one dashboard save. Text fields always overwrite the stored
// values; ImageURL/ResumeURL are nil when no new file was uploaded in this
// save, in which case the previously stored URL is preserved.
type Update struct {
	UserID      int64
	Bio         string
	GithubURL   string
	LinkedinURL string
	Projects    string
	ImageURL    *string
	ResumeURL   *string
}

// Repository is the storage contract for profile records.
type Repository interface {
	// GetByUserID returns common.ErrorNotFound when the user has no profile.
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)

	// Upsert inserts the profile on first save and updates it afterwards, in
	// a single atomic statement keyed on the user_id unique constraint.
	Upsert(ctx context.Context, upd *Update) (*models.Profile, error)
}
