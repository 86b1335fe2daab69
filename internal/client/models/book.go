// Package models holds the client-side view of the API payloads.
package models

import "time"

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Year        *int      `json:"year,omitempty"`
	Description string    `json:"description"`
	Cover       string    `json:"cover"`
	Status      string    `json:"status"`
	UserID      string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewBook is the body of a create request. Empty optional fields are left
// out so the server applies its defaults.
type NewBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	Year        *int   `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
	Cover       string `json:"cover,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Statuses lists the values the server accepts for Book.Status.
var Statuses = []string{"to-read", "reading", "completed"}
