package library

import "time"

// SavedBook is a catalog book a user has added to their collection.
//
// The (OwnerID, BookID) pair is unique: a user saves a given catalog book at
// most once. Rows are created and deleted, never mutated in place.
type SavedBook struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	BookID      string    `json:"book_id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	InfoLink    string    `json:"info_link"`
	CreatedAt   time.Time `json:"created_at"`
}

// SaveBookInput is the client-supplied snapshot of a catalog record to save.
// The owner comes from the authorization gate, never from the body.
type SaveBookInput struct {
	BookID      string   `json:"book_id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	InfoLink    string   `json:"info_link"`
}

// Page is one batch of a collection listing, ordered by save time descending.
// An empty NextCursor signals the end of the collection.
type Page struct {
	Books      []*SavedBook `json:"books"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// Global field names for validation
const (
	FieldBookID = "book_id"
	FieldTitle  = "title"
	FieldLimit  = "limit"
	FieldCursor = "cursor"
)
