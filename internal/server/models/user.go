// Package models holds the domain types shared by the repositories, the
// services and the HTTP boundary.
package models

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the principal resolved from a session token.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// NormalizeEmail is applied before an email is stored or looked up, which
// makes email uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
