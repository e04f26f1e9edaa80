package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devfolio/internal/common"
	"devfolio/internal/dbx"
	"devfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query :=
		`SELECT id, user_id, bio, github_url, linkedin_url, projects, image_url, resume_url, updated_at
		 FROM profiles
		 WHERE user_id = $1
		 `

	row := r.db.QueryRowContext(ctx, query, userID)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

// Upsert writes the whole save in one statement. Concurrent first saves for
// the same user serialize on the user_id unique constraint instead of racing
// a read-then-branch-then-write sequence. COALESCE keeps the stored asset
// URL when the save carries no new one.
func (r *PostgresRepository) Upsert(ctx context.Context, upd *Update) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (user_id, bio, github_url, linkedin_url, projects, image_url, resume_url, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		     bio = EXCLUDED.bio,
		     github_url = EXCLUDED.github_url,
		     linkedin_url = EXCLUDED.linkedin_url,
		     projects = EXCLUDED.projects,
		     image_url = COALESCE(EXCLUDED.image_url, profiles.image_url),
		     resume_url = COALESCE(EXCLUDED.resume_url, profiles.resume_url),
		     updated_at = now()
		 RETURNING id, user_id, bio, github_url, linkedin_url, projects, image_url, resume_url, updated_at
		 `

	row := r.db.QueryRowContext(ctx, query,
		upd.UserID, upd.Bio, upd.GithubURL, upd.LinkedinURL, upd.Projects, upd.ImageURL, upd.ResumeURL)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profile, nil
}

// scanProfile reads one profile row, mapping NULL text columns to "".
func scanProfile(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	var bio, github, linkedin, projects, imageURL, resumeURL sql.NullString

	err := row.Scan(&profile.ID, &profile.UserID, &bio, &github, &linkedin,
		&projects, &imageURL, &resumeURL, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}

	profile.Bio = bio.String
	profile.GithubURL = github.String
	profile.LinkedinURL = linkedin.String
	profile.Projects = projects.String
	profile.ImageURL = imageURL.String
	profile.ResumeURL = resumeURL.String

	return profile, nil
}
