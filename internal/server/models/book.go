package models

import "time"

type Status string

const (
	StatusToRead    Status = "to-read"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// Book is a record in a user's collection. UserID never changes after creation.
type Book struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Year        *int      `json:"year,omitempty"`
	Description string    `json:"description"`
	Cover       string    `json:"cover"`
	Status      Status    `json:"status"`
	UserID      string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookInput is the payload of a create request. Ownership, id and timestamps
// are not part of it; the server assigns them.
type BookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Year        *int   `json:"year"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Status      string `json:"status"`
}

// BookPatch is the payload of an update request. A field whose key is absent
// from the JSON body has Set == false and leaves the stored value alone.
type BookPatch struct {
	Title       Field[string] `json:"title"`
	Author      Field[string] `json:"author"`
	ISBN        Field[string] `json:"isbn"`
	Year        Field[int]    `json:"year"`
	Description Field[string] `json:"description"`
	Cover       Field[string] `json:"cover"`
	Status      Field[string] `json:"status"`
}
