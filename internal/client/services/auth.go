// Package services contains application services for the book shelf CLI.
// They sit between the REPL and the API client and own the session token.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/client"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/models"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/session"
)

// ErrNotLoggedIn is returned by operations that need a session when there
// is none.
var ErrNotLoggedIn = errors.New("not logged in")

type AuthService interface {
	Register(ctx context.Context, name, email, password, confirm string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	IsLoggedIn() bool
	Ping(ctx context.Context) error
}

// Session holds the current token and persists it through a session.Store.
// It is shared by the auth and book services.
type Session struct {
	store session.Store
	token string
}

// NewSession restores a previously saved token, if any.
func NewSession(store session.Store) (*Session, error) {
	tok, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, token: tok}, nil
}

func (s *Session) Token() string { return s.token }

func (s *Session) set(token string) error {
	s.token = token
	return s.store.Save(token)
}

func (s *Session) clear() error {
	s.token = ""
	return s.store.Clear()
}

// check drops the session when the server rejected the token.
func (s *Session) check(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = s.clear()
	}
	return err
}

type authService struct {
	client  client.Client
	session *Session
}

func NewAuthService(c client.Client, s *Session) AuthService {
	return &authService{client: c, session: s}
}

// Register creates the account. The server does not log the user in, so no
// token is stored.
func (a *authService) Register(ctx context.Context, name, email, password, confirm string) error {
	return a.client.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password, confirm)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return a.session.set(token)
}

// Logout forgets the token locally. Tokens are not revocable server-side.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.clear()
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	if !a.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	u, err := a.client.Me(ctx, a.session.Token())
	return u, a.session.check(err)
}

func (a *authService) IsLoggedIn() bool {
	return a.session.Token() != ""
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
