// Package client talks to the book shelf REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password, confirm string) error
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
	ListBooks(ctx context.Context, token string) ([]models.Book, error)
	CreateBook(ctx context.Context, token string, b models.NewBook) (*models.Book, error)
	GetBook(ctx context.Context, token, id string) (*models.Book, error)
	UpdateBook(ctx context.Context, token, id string, patch map[string]any) (*models.Book, error)
	DeleteBook(ctx context.Context, token, id string) error
}

// envelope mirrors the server's response body.
type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *models.User  `json:"user"`
	Book    *models.Book  `json:"book"`
	Books   []models.Book `json:"books"`
}

type RESTClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*RESTClient)(nil)

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

func bookPath(id string) string {
	return "/api/books/" + url.PathEscape(id)
}

func (c *RESTClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/test", "", nil)
	return err
}

func (c *RESTClient) Register(ctx context.Context, name, email, password, confirm string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":            name,
		"email":           email,
		"password":        password,
		"confirmPassword": confirm,
	})
	return err
}

func (c *RESTClient) Login(ctx context.Context, email, password string) (string, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

func (c *RESTClient) Me(ctx context.Context, token string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *RESTClient) ListBooks(ctx context.Context, token string) ([]models.Book, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/books", token, nil)
	if err != nil {
		return nil, err
	}
	return env.Books, nil
}

func (c *RESTClient) CreateBook(ctx context.Context, token string, b models.NewBook) (*models.Book, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/books", token, b)
	if err != nil {
		return nil, err
	}
	return env.Book, nil
}

func (c *RESTClient) GetBook(ctx context.Context, token, id string) (*models.Book, error) {
	env, err := c.do(ctx, http.MethodGet, bookPath(id), token, nil)
	if err != nil {
		return nil, err
	}
	return env.Book, nil
}

// UpdateBook sends patch as is. Keys left out are not changed; a nil value
// clears the field.
func (c *RESTClient) UpdateBook(ctx context.Context, token, id string, patch map[string]any) (*models.Book, error) {
	env, err := c.do(ctx, http.MethodPut, bookPath(id), token, patch)
	if err != nil {
		return nil, err
	}
	return env.Book, nil
}

func (c *RESTClient) DeleteBook(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, bookPath(id), token, nil)
	return err
}
