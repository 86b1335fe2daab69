package rest

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

// --- fakes ---

var aliceID = models.Identity{ID: "u1", Name: "Alice", Email: "a@x.com"}

type fakeAuth struct {
	registerErr error
	loginErr    error
	meErr       error

	registered []string
}

func (f *fakeAuth) Register(_ context.Context, name, email, password string) (*models.User, error) {
	f.registered = append(f.registered, email)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u1", Name: name, Email: email}, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "good", nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (models.Identity, error) {
	switch token {
	case "":
		return models.Identity{}, common.ErrMissingToken
	case "good":
		return aliceID, nil
	case "expired":
		return models.Identity{}, common.ErrTokenExpired
	}
	return models.Identity{}, common.ErrInvalidToken
}

func (f *fakeAuth) Me(_ context.Context, id models.Identity) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &models.User{ID: id.ID, Name: id.Name, Email: id.Email, PasswordHash: "secret-hash"}, nil
}

type fakeBooks struct {
	calls int
	err   error
	books []models.Book

	lastPatch models.BookPatch
	lastID    string
	panicOn   string
}

func (f *fakeBooks) List(context.Context, models.Identity) ([]models.Book, error) {
	f.calls++
	return f.books, f.err
}

func (f *fakeBooks) Create(_ context.Context, id models.Identity, in models.BookInput) (*models.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Book{ID: "b1", Title: in.Title, Author: in.Author, Status: models.StatusToRead, UserID: id.ID}, nil
}

func (f *fakeBooks) Get(_ context.Context, _ models.Identity, bookID string) (*models.Book, error) {
	f.calls++
	if bookID == f.panicOn {
		panic("kaboom")
	}
	f.lastID = bookID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Book{ID: bookID, Title: "Dune", Author: "Herbert", Status: models.StatusReading}, nil
}

func (f *fakeBooks) Update(_ context.Context, _ models.Identity, bookID string, p models.BookPatch) (*models.Book, error) {
	f.calls++
	f.lastID, f.lastPatch = bookID, p
	if f.err != nil {
		return nil, f.err
	}
	return &models.Book{ID: bookID, Title: "Dune", Author: "Herbert", Status: models.StatusCompleted}, nil
}

func (f *fakeBooks) Delete(_ context.Context, _ models.Identity, bookID string) error {
	f.calls++
	f.lastID = bookID
	return f.err
}

// --- helpers ---

func newTestServer(t *testing.T) (*Server, *fakeAuth, *fakeBooks) {
	t.Helper()
	a, b := &fakeAuth{}, &fakeBooks{}
	s := NewServer(":0", time.Second, time.Second, logging.Nop{})
	s.SetServices(&Services{Auth: a, Books: b})
	return s, a, b
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Book    *models.Book    `json:"book"`
	Books   []models.Book   `json:"books"`
}

func do(t *testing.T, s *Server, method, path, body string, headers ...string) (int, response, map[string]json.RawMessage) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out response
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	return resp.StatusCode, out, keys
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

// --- tests ---

func TestTestEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	code, out, _ := do(t, s, http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Success)
	assert.Equal(t, "Test endpoint working correctly", out.Message)
}

func TestUnknownRoute(t *testing.T) {
	s, _, _ := newTestServer(t)

	code, out, _ := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, out.Success)
	assert.Equal(t, "Route not found", out.Message)
}

func TestUnavailableUntilServicesSet(t *testing.T) {
	s := NewServer(":0", time.Second, time.Second, logging.Nop{})

	code, out, _ := do(t, s, http.MethodGet, "/api/books", "", bearer("good")...)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Service temporarily unavailable", out.Message)

	code, _, _ = do(t, s, http.MethodGet, "/api/test", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"ok", `{"name":"A","email":"a@x.com","password":"p","confirmPassword":"p"}`, nil, 201, "User registered successfully"},
		{"no confirm field", `{"name":"A","email":"a@x.com","password":"p"}`, nil, 201, "User registered successfully"},
		{"mismatch", `{"name":"A","email":"a@x.com","password":"p","confirmPassword":"q"}`, nil, 400, "Passwords do not match"},
		{"duplicate", `{"name":"A","email":"a@x.com","password":"p"}`, common.ErrorAlreadyExists, 400, "User already exists"},
		{"validation", `{"name":"","email":"a@x.com","password":"p"}`, common.ValidationError("Name, email and password are required"), 400, "Name, email and password are required"},
		{"store down", `{"name":"A","email":"a@x.com","password":"p"}`, common.ErrorInternal, 500, "Server error"},
		{"malformed", `{"name":`, nil, 400, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, a, _ := newTestServer(t)
			a.registerErr = tt.err

			code, out, keys := do(t, s, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, out.Message)
			assert.Equal(t, tt.wantCode < 400, out.Success)
			assert.NotContains(t, keys, "token")
		})
	}
}

func TestRegister_MismatchSkipsService(t *testing.T) {
	s, a, _ := newTestServer(t)

	_, _, _ = do(t, s, http.MethodPost, "/api/auth/register", `{"name":"A","email":"a@x.com","password":"p","confirmPassword":"q"}`)
	assert.Empty(t, a.registered)
}

func TestLogin(t *testing.T) {
	s, a, _ := newTestServer(t)

	code, out, _ := do(t, s, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Success)
	assert.Equal(t, "good", out.Token)

	a.loginErr = common.ErrInvalidCredentials
	code, out, _ = do(t, s, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", out.Message)
}

func TestMe(t *testing.T) {
	s, a, _ := newTestServer(t)

	code, out, _ := do(t, s, http.MethodGet, "/api/auth/me", "", bearer("good")...)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(out.User), `"email":"a@x.com"`)
	assert.NotContains(t, string(out.User), "secret-hash")

	a.meErr = common.ErrorNotFound
	code, out, _ = do(t, s, http.MethodGet, "/api/auth/me", "", bearer("good")...)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", out.Message)
}

func TestAuthFailuresNeverReachBooks(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		wantMsg string
	}{
		{"no token", nil, "No token, authorization denied"},
		{"bad token", bearer("forged"), "Token is not valid"},
		{"expired token", bearer("expired"), "Token has expired"},
		{"not bearer", []string{"Authorization", "Basic Zm9vOmJhcg=="}, "No token, authorization denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, b := newTestServer(t)

			for _, r := range []struct{ method, path, body string }{
				{http.MethodGet, "/api/books", ""},
				{http.MethodPost, "/api/books", `{"title":"T","author":"A"}`},
				{http.MethodGet, "/api/books/b1", ""},
				{http.MethodPut, "/api/books/b1", `{"status":"reading"}`},
				{http.MethodDelete, "/api/books/b1", ""},
			} {
				code, out, _ := do(t, s, r.method, r.path, r.body, tt.headers...)
				assert.Equal(t, http.StatusUnauthorized, code, r.path)
				assert.Equal(t, tt.wantMsg, out.Message)
				assert.False(t, out.Success)
			}
			assert.Zero(t, b.calls)
		})
	}
}

func TestTokenFromCookie(t *testing.T) {
	s, _, b := newTestServer(t)

	code, _, _ := do(t, s, http.MethodGet, "/api/books", "", "Cookie", common.AuthCookieName+"=good")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, b.calls)
}

func TestListBooks_EmptyHasBooksKey(t *testing.T) {
	s, _, _ := newTestServer(t)

	code, out, keys := do(t, s, http.MethodGet, "/api/books", "", bearer("good")...)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Success)
	assert.JSONEq(t, `[]`, string(keys["books"]))
}

func TestCreateBook(t *testing.T) {
	s, _, b := newTestServer(t)

	code, out, _ := do(t, s, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert"}`, bearer("good")...)
	assert.Equal(t, http.StatusCreated, code)
	require.NotNil(t, out.Book)
	assert.Equal(t, "Dune", out.Book.Title)
	assert.Equal(t, aliceID.ID, out.Book.UserID)

	b.err = common.ValidationError("Title is required")
	code, out, _ = do(t, s, http.MethodPost, "/api/books", `{"author":"Herbert"}`, bearer("good")...)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Title is required", out.Message)
}

func TestGetBook_NotFound(t *testing.T) {
	s, _, b := newTestServer(t)
	b.err = common.ErrorNotFound

	code, out, _ := do(t, s, http.MethodGet, "/api/books/zzz", "", bearer("good")...)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Book not found", out.Message)
	assert.Equal(t, "zzz", b.lastID)
}

func TestUpdateBook_DecodesPatch(t *testing.T) {
	s, _, b := newTestServer(t)

	code, out, _ := do(t, s, http.MethodPut, "/api/books/b1", `{"status":"completed","isbn":null}`, bearer("good")...)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusCompleted, out.Book.Status)

	assert.Equal(t, "b1", b.lastID)
	assert.Equal(t, models.Set("completed"), b.lastPatch.Status)
	assert.Equal(t, models.Null[string](), b.lastPatch.ISBN)
	assert.False(t, b.lastPatch.Title.Set)
}

func TestDeleteBook(t *testing.T) {
	s, _, b := newTestServer(t)

	code, out, _ := do(t, s, http.MethodDelete, "/api/books/b1", "", bearer("good")...)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Book removed", out.Message)

	b.err = common.ErrorNotFound
	code, out, _ = do(t, s, http.MethodDelete, "/api/books/b1", "", bearer("good")...)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Book not found", out.Message)
}

func TestInternalErrorIsOpaque(t *testing.T) {
	s, _, b := newTestServer(t)
	b.err = common.ErrorInternal

	code, out, _ := do(t, s, http.MethodGet, "/api/books", "", bearer("good")...)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error", out.Message)
}

func TestPanicIsRecovered(t *testing.T) {
	s, _, b := newTestServer(t)
	b.panicOn = "boom"

	code, out, _ := do(t, s, http.MethodGet, "/api/books/boom", "", bearer("good")...)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Something went wrong!", out.Message)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{common.ValidationError("Author is required"), 400, "Author is required"},
		{common.ErrorAlreadyExists, 400, "User already exists"},
		{common.ErrInvalidCredentials, 400, "Invalid credentials"},
		{common.ErrMissingToken, 401, "No token, authorization denied"},
		{common.ErrInvalidToken, 401, "Token is not valid"},
		{common.ErrTokenExpired, 401, "Token has expired"},
		{common.ErrorNotFound, 404, "Book not found"},
		{common.ErrorInternal, 500, "Server error"},
	}
	for _, tt := range tests {
		code, msg := statusFor(tt.err, msgBookNotFound)
		assert.Equal(t, tt.code, code, tt.err.Error())
		assert.Equal(t, tt.msg, msg)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, _, _ := newTestServer(t)
	ln, err := netListen(t)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/test")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func netListen(t *testing.T) (net.Listener, error) {
	t.Helper()
	return net.Listen("tcp", "127.0.0.1:0")
}
