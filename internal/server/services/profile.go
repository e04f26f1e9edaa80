package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"devfolio/internal/common"
	"devfolio/internal/server/models"
	"devfolio/internal/server/repositories/profiles"
	"devfolio/internal/server/repositories/repomanager"
)

// PortfolioView is the public read-only projection of a profile, keyed by
// email. It never distinguishes a missing user from a missing profile.
type PortfolioView struct {
	Email     string
	Profile   *models.Profile
	Projects  []string
	UpdatedAt string
}

// ProfileService reads and writes profile records and composes the public
// portfolio view.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the user's profile, or common.ErrorNotFound when none was
// saved yet. Reading never creates one.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
}

// Save persists one dashboard save. Text fields overwrite unconditionally;
// nil asset URLs preserve whatever is stored. The underlying write is a
// single upsert, so concurrent saves for the same user cannot duplicate the
// row.
func (s *ProfileService) Save(ctx context.Context, upd *profiles.Update) (*models.Profile, error) {
	profile, err := s.repomanager.Profiles(s.db).Upsert(ctx, upd)
	if err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}
	return profile, nil
}

// Portfolio composes the public view for the given email. A missing user and
// a user without a profile both return common.ErrorNotFound so the public
// page cannot be used to probe which emails are registered.
func (s *ProfileService) Portfolio(ctx context.Context, email string) (*PortfolioView, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	profile, err := s.repomanager.Profiles(s.db).GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	return &PortfolioView{
		Email:    user.Email,
		Profile:  profile,
		Projects: SplitProjects(profile.Projects),
	}, nil
}

// SplitProjects turns the stored comma-delimited project text into an ordered
// list, trimming whitespace and dropping empty entries.
func SplitProjects(projects string) []string {
	result := []string{}
	for _, p := range strings.Split(projects, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
