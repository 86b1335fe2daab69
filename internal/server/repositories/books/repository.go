// Package books is the book store. Every read and write is scoped by the
// owning user id, so a book owned by someone else looks exactly like a book
// that does not exist.
package books

import (
	"context"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

// Repository persists books.
//
// GetByID, Update and Delete match on id AND owner and fail with
// common.ErrorNotFound when nothing matches. ListByOwner orders by creation
// time descending, ties broken by id descending, and never returns nil.
type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Book, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) (*models.Book, error)
	Delete(ctx context.Context, ownerID, id string) error
}
