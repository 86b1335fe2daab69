package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/repomanager"
)

// BookService performs book operations on behalf of an authenticated
// identity. A book that belongs to somebody else is reported as
// common.ErrorNotFound, exactly like a missing one.
type BookService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         Clock
}

func NewBookService(m repomanager.RepositoryManager, logger logging.Logger) *BookService {
	return &BookService{
		repomanager: m,
		logger:      logger.With("module", "book_service"),
		now:         systemClock,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *BookService) WithClock(now Clock) *BookService {
	s.now = now
	return s
}

// List returns the caller's books, newest first.
func (s *BookService) List(ctx context.Context, id models.Identity) ([]models.Book, error) {
	if id.ID == "" {
		return nil, common.ErrInvalidToken
	}

	list, err := s.repomanager.Books().ListByOwner(ctx, id.ID)
	if err != nil {
		return nil, s.storeError(ctx, "listing books", err)
	}
	return list, nil
}

func (s *BookService) Create(ctx context.Context, id models.Identity, in models.BookInput) (*models.Book, error) {
	if id.ID == "" {
		return nil, common.ErrInvalidToken
	}

	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	switch {
	case title == "":
		return nil, common.ValidationError("Title is required")
	case author == "":
		return nil, common.ValidationError("Author is required")
	}

	status := models.Status(strings.TrimSpace(in.Status))
	if !status.Valid() {
		status = models.StatusToRead
	}

	now := s.now()
	book := &models.Book{
		Title:       title,
		Author:      author,
		ISBN:        strings.TrimSpace(in.ISBN),
		Year:        copyYear(in.Year),
		Description: strings.TrimSpace(in.Description),
		Cover:       strings.TrimSpace(in.Cover),
		Status:      status,
		UserID:      id.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repomanager.Books().Create(ctx, book)
	if err != nil {
		return nil, s.storeError(ctx, "creating book", err)
	}
	return created, nil
}

func (s *BookService) Get(ctx context.Context, id models.Identity, bookID string) (*models.Book, error) {
	if id.ID == "" {
		return nil, common.ErrInvalidToken
	}

	book, err := s.repomanager.Books().GetByID(ctx, id.ID, bookID)
	if err != nil {
		return nil, s.storeError(ctx, "loading book", err)
	}
	return book, nil
}

// Update merges patch over the stored book. Keys absent from the request
// keep their values; see applyPatch for nulls and empty strings.
func (s *BookService) Update(ctx context.Context, id models.Identity, bookID string, patch models.BookPatch) (*models.Book, error) {
	if id.ID == "" {
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Books()
	book, err := repo.GetByID(ctx, id.ID, bookID)
	if err != nil {
		return nil, s.storeError(ctx, "loading book", err)
	}

	if err := applyPatch(book, patch); err != nil {
		return nil, err
	}

	now := s.now()
	if now.After(book.UpdatedAt) {
		book.UpdatedAt = now
	}

	updated, err := repo.Update(ctx, book)
	if err != nil {
		return nil, s.storeError(ctx, "updating book", err)
	}
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id models.Identity, bookID string) error {
	if id.ID == "" {
		return common.ErrInvalidToken
	}

	if err := s.repomanager.Books().Delete(ctx, id.ID, bookID); err != nil {
		return s.storeError(ctx, "deleting book", err)
	}
	return nil
}

// storeError keeps not-found as is and hides every other storage failure
// behind common.ErrorInternal after logging it.
func (s *BookService) storeError(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, op, "error", err)
	return common.ErrorInternal
}

// applyPatch merges p into b.
//
//	title, author:               null or blank is rejected
//	isbn, description, cover:    null or "" clears the value
//	year:                        null clears the value
//	status:                      null resets to to-read, unknown values are rejected
func applyPatch(b *models.Book, p models.BookPatch) error {
	if p.Title.Set {
		v := strings.TrimSpace(p.Title.Value)
		if v == "" {
			return common.ValidationError("Title is required")
		}
		b.Title = v
	}
	if p.Author.Set {
		v := strings.TrimSpace(p.Author.Value)
		if v == "" {
			return common.ValidationError("Author is required")
		}
		b.Author = v
	}
	if p.ISBN.Set {
		b.ISBN = strings.TrimSpace(p.ISBN.Value)
	}
	if p.Description.Set {
		b.Description = strings.TrimSpace(p.Description.Value)
	}
	if p.Cover.Set {
		b.Cover = strings.TrimSpace(p.Cover.Value)
	}
	if p.Year.Set {
		if p.Year.Null {
			b.Year = nil
		} else {
			b.Year = copyYear(&p.Year.Value)
		}
	}
	if p.Status.Set {
		if p.Status.Null {
			b.Status = models.StatusToRead
		} else {
			st := models.Status(strings.TrimSpace(p.Status.Value))
			if !st.Valid() {
				return common.ValidationErrorf("Invalid status %q: expected to-read, reading or completed", p.Status.Value)
			}
			b.Status = st
		}
	}
	return nil
}

func copyYear(y *int) *int {
	if y == nil {
		return nil
	}
	v := *y
	return &v
}
