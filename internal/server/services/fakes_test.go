package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/books"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/users"
)

// --- in-memory store ---

type fakeStore struct {
	mu    sync.Mutex
	seq   int
	calls int
	users map[string]models.User
	books map[string]models.Book

	// failWith makes every call fail when set.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]models.User{}, books: map[string]models.Book{}}
}

func (s *fakeStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%04d", s.seq)
}

func (s *fakeStore) touch() error {
	s.calls++
	return s.failWith
}

func (s *fakeStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeManager struct{ s *fakeStore }

func (m *fakeManager) RunMigrations(context.Context) error { return nil }
func (m *fakeManager) Users() users.Repository             { return fakeUsers{m.s} }
func (m *fakeManager) Books() books.Repository             { return fakeBooks{m.s} }
func (m *fakeManager) Ping(context.Context) error          { return nil }
func (m *fakeManager) Close(context.Context) error         { return nil }

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("db error: %w", common.ErrorAlreadyExists)
		}
	}
	out := *u
	out.ID = r.s.nextID()
	r.s.users[out.ID] = out
	return &out, nil
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type fakeBooks struct{ s *fakeStore }

func (r fakeBooks) Create(_ context.Context, b *models.Book) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	out := *b
	out.ID = r.s.nextID()
	r.s.books[out.ID] = out
	return &out, nil
}

func (r fakeBooks) GetByID(_ context.Context, ownerID, id string) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	b, ok := r.s.books[id]
	if !ok || b.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (r fakeBooks) ListByOwner(_ context.Context, ownerID string) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	out := []models.Book{}
	for _, b := range r.s.books {
		if b.UserID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r fakeBooks) Update(_ context.Context, b *models.Book) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return nil, err
	}
	cur, ok := r.s.books[b.ID]
	if !ok || cur.UserID != b.UserID {
		return nil, common.ErrorNotFound
	}
	out := *b
	r.s.books[b.ID] = out
	return &out, nil
}

func (r fakeBooks) Delete(_ context.Context, ownerID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.touch(); err != nil {
		return err
	}
	b, ok := r.s.books[id]
	if !ok || b.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.s.books, id)
	return nil
}

var errBoom = errors.New("boom")
