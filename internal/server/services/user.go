// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential verification, and
// session token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/common"
	"devfolio/internal/server/auth"
	"devfolio/internal/server/config"
	"devfolio/internal/server/models"
	"devfolio/internal/server/repositories/repomanager"
)

// dummyHash is a bcrypt hash of an unguessable value. Authenticate compares
// against it when the email is unknown so both failure paths pay for one
// bcrypt verification.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// UserService provides authentication-related operations:
// - Register: create users
// - Authenticate: verify credentials
// - CreateSession / ValidateSession: mint and check session tokens
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	jwtSecret               []byte
	sessionValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
	}
}

// Register creates a new user with the given email and password. The password
// is bcrypt-hashed before it reaches storage; the plaintext is never kept.
// A duplicate email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorInternal)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Authenticate verifies the email/password pair. An unknown email and a wrong
// password both return common.ErrorUnauthorized; the unknown-email path still
// runs one bcrypt comparison to keep the two observably similar.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GetByID loads a user by id, for rendering the authenticated dashboard.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// ListWithProfiles returns the users that have filled a profile.
func (s *UserService) ListWithProfiles(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).ListWithProfiles(ctx)
}

// CreateSession mints a signed session token for the user.
func (s *UserService) CreateSession(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ValidateSession checks a session token and returns the identity it carries.
func (s *UserService) ValidateSession(token string) (*auth.Session, error) {
	session, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return session, nil
}

// SessionTTL reports the configured session lifetime, for cookie expiry.
func (s *UserService) SessionTTL() time.Duration {
	return s.sessionValidityDuration
}
