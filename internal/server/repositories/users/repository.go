// Package users is the credential store: one implementation per storage
// driver behind the Repository interface.
package users

import (
	"context"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

// Repository persists users. Emails arrive already normalized.
//
// Create fails with common.ErrorAlreadyExists when the email is taken.
// The getters fail with common.ErrorNotFound when nothing matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
