// Package auth mints and verifies the signed session tokens that carry the
// authenticated identity between requests. A token is the only session state
// the server keeps; expiry is enforced by the exp claim.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"devfolio/internal/common"
)

// Claims extends the registered claims with the authenticated user's email.
// The user id travels in the standard Subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Session is the transient authenticated context extracted from a token.
type Session struct {
	UserID int64
	Email  string
}

// GenerateToken signs an HS256 session token for the given user.
func GenerateToken(userID int64, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a session token and returns the session it carries.
func ParseToken(tokenString string, secretKey []byte) (*Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrorInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrorInvalidToken
	}

	return &Session{UserID: userID, Email: claims.Email}, nil
}
