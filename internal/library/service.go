package library

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Save adds a catalog book to the caller's collection.
//
// A duplicate save surfaces as a Conflict — expected workflow, not retried
// or masked. The store's unique constraint decides the winner under
// concurrent saves, so no store call happens before authentication passes.
func (service *Service) Save(ctx context.Context, identity sec.Identity, input *SaveBookInput) (*SavedBook, error) {
	if _, err := sec.RequireAuthenticated(identity); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldBookID, input.BookID).MaxLen(FieldBookID, input.BookID, 128)
	validator.MaxLen(FieldTitle, input.Title, 512)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	authors := input.Authors
	if authors == nil {
		authors = []string{}
	}

	book := &SavedBook{
		OwnerID:     identity.String(),
		BookID:      input.BookID,
		Title:       input.Title,
		Authors:     authors,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		InfoLink:    input.InfoLink,
	}

	if err := service.repo.Create(ctx, book); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, apperr.Conflict("This book is already saved")
		}
		return nil, err
	}

	service.logger.Info("book_saved",
		slog.String("owner_id", book.OwnerID),
		slog.String("book_id", book.BookID),
	)
	return book, nil
}

// List returns one page of the caller's own collection.
func (service *Service) List(ctx context.Context, identity sec.Identity, cursor string, limit int) (*Page, error) {
	identity, err := sec.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	return service.listOwner(ctx, identity.String(), cursor, limit)
}

// ListForUser returns one page of the target user's collection.
//
// Policy is strict: authentication first, then ownership — a user may only
// ever list their own collection. There is no shared/public exception path.
func (service *Service) ListForUser(ctx context.Context, identity sec.Identity, targetOwnerID, cursor string, limit int) (*Page, error) {
	identity, err := sec.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	if err := sec.RequireOwnership(identity, targetOwnerID); err != nil {
		return nil, err
	}

	return service.listOwner(ctx, targetOwnerID, cursor, limit)
}

// Get looks up a single saved book in the caller's collection.
func (service *Service) Get(ctx context.Context, identity sec.Identity, bookID string) (*SavedBook, error) {
	identity, err := sec.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	book, err := service.repo.FindByOwnerAndBook(ctx, identity.String(), bookID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Saved book")
		}
		return nil, err
	}

	return book, nil
}

// Delete removes a book from the caller's collection and returns how many
// rows were deleted (0 or 1). Deleting an unsaved book is not an error, it
// reports a count of 0.
func (service *Service) Delete(ctx context.Context, identity sec.Identity, bookID string) (int64, error) {
	identity, err := sec.RequireAuthenticated(identity)
	if err != nil {
		return 0, err
	}

	if err := (&validate.Validator{}).Required(FieldBookID, bookID).Err(); err != nil {
		return 0, err
	}

	count, err := service.repo.DeleteByOwnerAndBook(ctx, identity.String(), bookID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("book_deleted",
		slog.String("owner_id", identity.String()),
		slog.String("book_id", bookID),
		slog.Int64("count", count),
	)
	return count, nil
}

// listOwner shares the cursor plumbing between List and ListForUser.
func (service *Service) listOwner(ctx context.Context, ownerID, cursor string, limit int) (*Page, error) {
	if err := (&validate.Validator{}).Range(FieldLimit, limit, 1, pagination.MaxLimit).Err(); err != nil {
		return nil, err
	}

	afterID, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, validate.RequiredError(FieldCursor, "Invalid cursor token")
	}

	books, nextAfterID, err := service.repo.ListByOwner(ctx, ownerID, afterID, limit)
	if err != nil {
		return nil, err
	}

	if books == nil {
		books = []*SavedBook{}
	}

	return &Page{
		Books:      books,
		NextCursor: pagination.EncodeCursor(nextAfterID),
	}, nil
}
