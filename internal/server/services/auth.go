// Package services contains the server-side business logic: AuthService
// handles registration, login and token verification, BookService the
// ownership-scoped book operations.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/auth"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/repomanager"
)

// Clock returns the current time. Timestamps are kept in UTC with millisecond
// precision, which every storage driver preserves exactly.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// AuthService registers users, checks their credentials and issues and
// verifies session tokens.
type AuthService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
	now         Clock
}

func NewAuthService(m repomanager.RepositoryManager, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		logger:      logger.With("module", "auth_service"),
		now:         systemClock,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *AuthService) WithClock(now Clock) *AuthService {
	s.now = now
	return s
}

// Register stores a new user. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, common.ValidationError("Name, email and password are required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "hashing password", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash, CreatedAt: s.now()}
	u, err := s.repomanager.Users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and returns a signed session token. An
// unknown email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", common.ValidationError("Email and password are required")
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "loading user", "error", err)
		return "", common.ErrorInternal
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "comparing password", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}

	token, _, err := s.tokens.Generate(models.Identity{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		s.logger.Error(ctx, "signing token", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate resolves a session token to an identity. It never touches
// storage.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	return s.tokens.Parse(token)
}

// Me returns the stored user behind an identity.
func (s *AuthService) Me(ctx context.Context, id models.Identity) (*models.User, error) {
	if id.ID == "" {
		return nil, common.ErrInvalidToken
	}

	u, err := s.repomanager.Users().GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "loading user", "user_id", id.ID, "error", err)
		return nil, common.ErrorInternal
	}
	return u, nil
}
