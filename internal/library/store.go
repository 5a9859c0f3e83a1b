package library

import "context"

// Repository is the typed persistence adapter for saved books.
//
// Create must be atomic with respect to the (owner, book) uniqueness rule:
// under concurrent duplicate saves at most one succeeds and the loser sees
// [dberr.ErrDuplicate]. ListByOwner walks the collection newest-first using
// keyset pagination; it returns the page plus the row id the next page
// resumes from ("" when the collection is exhausted).
type Repository interface {
	FindByOwnerAndBook(context context.Context, ownerID, bookID string) (*SavedBook, error)
	Create(context context.Context, book *SavedBook) error
	ListByOwner(context context.Context, ownerID string, afterID string, limit int) ([]*SavedBook, string, error)
	DeleteByOwnerAndBook(context context.Context, ownerID, bookID string) (int64, error)
}
