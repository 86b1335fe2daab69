// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

// Claims carries the identity of the session owner next to the registered
// claims (sub, iat, exp, jti).
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenManager signs and verifies HS256 session tokens. Tokens are not
// stored anywhere, so one stays valid until it expires.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), validity: validity, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

func (m *TokenManager) Generate(id models.Identity) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		UserID: id.ID,
		Name:   id.Name,
		Email:  id.Email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse verifies the token and returns the embedded identity.
// Errors are common.ErrMissingToken, common.ErrTokenExpired or
// common.ErrInvalidToken.
func (m *TokenManager) Parse(tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, common.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, common.ErrTokenExpired
		}
		return models.Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return models.Identity{}, common.ErrInvalidToken
	}

	return models.Identity{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}
