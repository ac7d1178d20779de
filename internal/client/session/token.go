package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/newsdigest/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload of the backend's bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID models.ID `json:"user_id"`
	Email  string    `json:"email"`
	Points int       `json:"points"`
}

// Session is the identity decoded from a bearer token.
type Session struct {
	UserID    string
	Email     string
	Points    int
	ExpiresAt time.Time
}

// Decode reads the token payload without verifying its signature; the
// backend verifies every request, the client only needs the identity and
// expiry. Tokens without an exp claim are rejected, as are tokens whose
// expiry is not after now.
func Decode(token string, now time.Time) (Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return Session{}, fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}

	exp := claims.ExpiresAt.Time
	if !now.Before(exp) {
		return Session{}, ErrTokenExpired
	}

	userID := string(claims.UserID)
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Session{}, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return Session{
		UserID:    userID,
		Email:     claims.Email,
		Points:    claims.Points,
		ExpiresAt: exp,
	}, nil
}
