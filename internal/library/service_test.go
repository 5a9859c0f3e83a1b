package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

// fakeRepository keeps saved books in memory with the same contract as the
// postgres adapter: constraint-backed create and inclusive keyset listing.
type fakeRepository struct {
	books  []*SavedBook
	nextID int
	calls  int
}

func (repo *fakeRepository) FindByOwnerAndBook(_ context.Context, ownerID, bookID string) (*SavedBook, error) {
	repo.calls++
	for _, book := range repo.books {
		if book.OwnerID == ownerID && book.BookID == bookID {
			return book, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepository) Create(_ context.Context, book *SavedBook) error {
	repo.calls++
	for _, existing := range repo.books {
		if existing.OwnerID == book.OwnerID && existing.BookID == book.BookID {
			return dberr.ErrDuplicate
		}
	}

	repo.nextID++
	book.ID = fmt.Sprintf("id-%04d", repo.nextID)
	repo.books = append(repo.books, book)
	return nil
}

func (repo *fakeRepository) ListByOwner(_ context.Context, ownerID string, afterID string, limit int) ([]*SavedBook, string, error) {
	repo.calls++

	owned := make([]*SavedBook, 0)
	for _, book := range repo.books {
		if book.OwnerID != ownerID {
			continue
		}
		if afterID != "" && book.ID > afterID {
			continue
		}
		owned = append(owned, book)
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	if len(owned) > limit {
		return owned[:limit], owned[limit].ID, nil
	}
	return owned, "", nil
}

func (repo *fakeRepository) DeleteByOwnerAndBook(_ context.Context, ownerID, bookID string) (int64, error) {
	repo.calls++
	for i, book := range repo.books {
		if book.OwnerID == ownerID && book.BookID == bookID {
			repo.books = append(repo.books[:i], repo.books[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := &fakeRepository{}
	return NewService(repo, slog.Default()), repo
}

func saveInput(bookID string) *SaveBookInput {
	return &SaveBookInput{
		BookID:  bookID,
		Title:   "Title of " + bookID,
		Authors: []string{"Some Author"},
	}
}

/*
TestService_Save covers the write path: the owner comes from the verified
identity, a duplicate save is a conflict, and anonymous callers are rejected
before the store is touched.
*/
func TestService_Save(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service, _ := newTestService()

		book, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))

		require.NoError(t, err)
		assert.Equal(t, "user-1", book.OwnerID)
		assert.Equal(t, "vol-1", book.BookID)
		assert.NotEmpty(t, book.ID)
	})

	t.Run("nil_authors_become_empty_slice", func(t *testing.T) {
		service, _ := newTestService()

		book, err := service.Save(context.Background(), sec.Identity("user-1"), &SaveBookInput{BookID: "vol-1"})

		require.NoError(t, err)
		assert.NotNil(t, book.Authors)
		assert.Empty(t, book.Authors)
	})

	t.Run("duplicate_is_conflict", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		_, err = service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		assert.Equal(t, "This book is already saved", ae.Message)
	})

	t.Run("same_book_different_owners_is_fine", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		_, err = service.Save(context.Background(), sec.Identity("user-2"), saveInput("vol-1"))
		assert.NoError(t, err)
	})

	t.Run("anonymous_is_rejected_before_store", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.Save(context.Background(), sec.Anonymous, saveInput("vol-1"))

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Zero(t, repo.calls)
	})

	t.Run("missing_book_id_is_rejected", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), &SaveBookInput{Title: "No ID"})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Zero(t, repo.calls)
	})
}

/*
TestService_Delete covers idempotent removal: the first delete reports 1, a
repeat reports 0 without erroring.
*/
func TestService_Delete(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		count, err := service.Delete(context.Background(), sec.Identity("user-1"), "vol-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = service.Delete(context.Background(), sec.Identity("user-1"), "vol-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("cannot_delete_another_owners_row", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		count, err := service.Delete(context.Background(), sec.Identity("user-2"), "vol-1")

		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		book, err := service.Get(context.Background(), sec.Identity("user-1"), "vol-1")
		require.NoError(t, err)
		assert.Equal(t, "vol-1", book.BookID)
	})

	t.Run("anonymous_is_rejected", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.Delete(context.Background(), sec.Anonymous, "vol-1")

		require.Error(t, err)
		assert.Zero(t, repo.calls)
	})
}

/*
TestService_Get covers single-row lookup within the caller's collection.
*/
func TestService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		book, err := service.Get(context.Background(), sec.Identity("user-1"), "vol-1")

		require.NoError(t, err)
		assert.Equal(t, "Title of vol-1", book.Title)
	})

	t.Run("not_found", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Get(context.Background(), sec.Identity("user-1"), "vol-404")

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_List covers the paging path: a full cursor walk visits every
saved book exactly once, newest save first.
*/
func TestService_List(t *testing.T) {
	t.Run("cursor_walk_is_complete", func(t *testing.T) {
		service, _ := newTestService()

		for i := 0; i < 25; i++ {
			_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput(fmt.Sprintf("vol-%02d", i)))
			require.NoError(t, err)
		}

		seen := make(map[string]struct{})
		cursor := ""
		pages := 0
		for {
			page, err := service.List(context.Background(), sec.Identity("user-1"), cursor, 10)
			require.NoError(t, err)
			pages++

			for _, book := range page.Books {
				_, duplicate := seen[book.BookID]
				require.False(t, duplicate, "book %s returned twice", book.BookID)
				seen[book.BookID] = struct{}{}
			}

			if page.NextCursor == "" {
				break
			}
			cursor = page.NextCursor
		}

		assert.Len(t, seen, 25)
		assert.Equal(t, 3, pages)
	})

	t.Run("newest_first", func(t *testing.T) {
		service, _ := newTestService()

		for i := 0; i < 3; i++ {
			_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput(fmt.Sprintf("vol-%d", i)))
			require.NoError(t, err)
		}

		page, err := service.List(context.Background(), sec.Identity("user-1"), "", 10)

		require.NoError(t, err)
		require.Len(t, page.Books, 3)
		assert.Equal(t, "vol-2", page.Books[0].BookID)
		assert.Equal(t, "vol-0", page.Books[2].BookID)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("owner_isolation", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)
		_, err = service.Save(context.Background(), sec.Identity("user-2"), saveInput("vol-2"))
		require.NoError(t, err)

		page, err := service.List(context.Background(), sec.Identity("user-1"), "", 10)

		require.NoError(t, err)
		require.Len(t, page.Books, 1)
		assert.Equal(t, "vol-1", page.Books[0].BookID)
	})

	t.Run("empty_collection_returns_empty_page", func(t *testing.T) {
		service, _ := newTestService()

		page, err := service.List(context.Background(), sec.Identity("user-1"), "", 10)

		require.NoError(t, err)
		assert.NotNil(t, page.Books)
		assert.Empty(t, page.Books)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("invalid_cursor_is_rejected", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.List(context.Background(), sec.Identity("user-1"), "!!garbage!!", 10)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("limit_out_of_range_is_rejected", func(t *testing.T) {
		service, repo := newTestService()

		for _, limit := range []int{0, pagination.MaxLimit + 1} {
			_, err := service.List(context.Background(), sec.Identity("user-1"), "", limit)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		}
		assert.Zero(t, repo.calls)
	})
}

/*
TestService_ListForUser covers the ownership policy on the per-user listing:
a caller may only ever read their own collection.
*/
func TestService_ListForUser(t *testing.T) {
	t.Run("own_collection", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.Save(context.Background(), sec.Identity("user-1"), saveInput("vol-1"))
		require.NoError(t, err)

		page, err := service.ListForUser(context.Background(), sec.Identity("user-1"), "user-1", "", 10)

		require.NoError(t, err)
		assert.Len(t, page.Books, 1)
	})

	t.Run("another_users_collection_is_forbidden", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.ListForUser(context.Background(), sec.Identity("user-1"), "user-2", "", 10)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("anonymous_is_unauthorized_not_forbidden", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.ListForUser(context.Background(), sec.Anonymous, "user-2", "", 10)

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}
