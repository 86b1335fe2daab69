package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/client"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/client/models"
)

type BookService interface {
	List(ctx context.Context) ([]models.Book, error)
	Add(ctx context.Context, b models.NewBook) (*models.Book, error)
	Show(ctx context.Context, id string) (*models.Book, error)
	SetStatus(ctx context.Context, id, status string) (*models.Book, error)
	Edit(ctx context.Context, id string, changes map[string]any) (*models.Book, error)
	Delete(ctx context.Context, id string) error
}

type bookService struct {
	client  client.Client
	session *Session
}

func NewBookService(c client.Client, s *Session) BookService {
	return &bookService{client: c, session: s}
}

func (b *bookService) token() (string, error) {
	tok := b.session.Token()
	if tok == "" {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}

func (b *bookService) List(ctx context.Context) ([]models.Book, error) {
	tok, err := b.token()
	if err != nil {
		return nil, err
	}
	list, err := b.client.ListBooks(ctx, tok)
	return list, b.session.check(err)
}

func (b *bookService) Add(ctx context.Context, nb models.NewBook) (*models.Book, error) {
	tok, err := b.token()
	if err != nil {
		return nil, err
	}
	book, err := b.client.CreateBook(ctx, tok, nb)
	return book, b.session.check(err)
}

func (b *bookService) Show(ctx context.Context, id string) (*models.Book, error) {
	tok, err := b.token()
	if err != nil {
		return nil, err
	}
	book, err := b.client.GetBook(ctx, tok, id)
	return book, b.session.check(err)
}

// SetStatus changes only the status of a book. The value is checked locally
// first to save a round trip.
func (b *bookService) SetStatus(ctx context.Context, id, status string) (*models.Book, error) {
	if !slices.Contains(models.Statuses, status) {
		return nil, fmt.Errorf("unknown status %q, expected one of %v", status, models.Statuses)
	}
	tok, err := b.token()
	if err != nil {
		return nil, err
	}
	book, err := b.client.UpdateBook(ctx, tok, id, map[string]any{"status": status})
	return book, b.session.check(err)
}

// EditableFields lists the keys Edit accepts.
var EditableFields = []string{"title", "author", "isbn", "year", "cover", "status", "description"}

// Edit sends changes as a partial update. Keys left out keep their stored
// values and a nil value clears the field. With no changes the book is only
// fetched.
func (b *bookService) Edit(ctx context.Context, id string, changes map[string]any) (*models.Book, error) {
	for k, v := range changes {
		if !slices.Contains(EditableFields, k) {
			return nil, fmt.Errorf("unknown field %q", k)
		}
		if k == "status" && v != nil {
			st, ok := v.(string)
			if !ok || !slices.Contains(models.Statuses, st) {
				return nil, fmt.Errorf("unknown status %v, expected one of %v", v, models.Statuses)
			}
		}
	}

	if len(changes) == 0 {
		return b.Show(ctx, id)
	}

	tok, err := b.token()
	if err != nil {
		return nil, err
	}
	book, err := b.client.UpdateBook(ctx, tok, id, changes)
	return book, b.session.check(err)
}

func (b *bookService) Delete(ctx context.Context, id string) error {
	tok, err := b.token()
	if err != nil {
		return err
	}
	return b.session.check(b.client.DeleteBook(ctx, tok, id))
}
