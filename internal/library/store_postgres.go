package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmark/shelfmark/internal/platform/database/schema"
	"github.com/shelfmark/shelfmark/internal/platform/dberr"
	"github.com/shelfmark/shelfmark/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) FindByOwnerAndBook(context context.Context, ownerID, bookID string) (*SavedBook, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.LibrarySavedBook.ID, schema.LibrarySavedBook.OwnerID, schema.LibrarySavedBook.BookID,
		schema.LibrarySavedBook.Title, schema.LibrarySavedBook.Authors, schema.LibrarySavedBook.Description,
		schema.LibrarySavedBook.ImageURL, schema.LibrarySavedBook.InfoLink, schema.LibrarySavedBook.CreatedAt,
		schema.LibrarySavedBook.Table, schema.LibrarySavedBook.OwnerID, schema.LibrarySavedBook.BookID,
	)
	book := &SavedBook{}

	err := repository.db.QueryRow(context, query, ownerID, bookID).Scan(
		&book.ID, &book.OwnerID, &book.BookID, &book.Title, &book.Authors,
		&book.Description, &book.ImageURL, &book.InfoLink, &book.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_saved_book")
	}

	return book, nil
}

// Create inserts the row and lets the (ownerid, bookid) unique constraint
// arbitrate duplicate saves. There is deliberately no prior existence check:
// a read-then-write pair would leave a race window the constraint closes.
func (repository *PostgresRepository) Create(context context.Context, book *SavedBook) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING %s
	`,
		schema.LibrarySavedBook.Table,
		schema.LibrarySavedBook.ID, schema.LibrarySavedBook.OwnerID, schema.LibrarySavedBook.BookID,
		schema.LibrarySavedBook.Title, schema.LibrarySavedBook.Authors, schema.LibrarySavedBook.Description,
		schema.LibrarySavedBook.ImageURL, schema.LibrarySavedBook.InfoLink, schema.LibrarySavedBook.CreatedAt,
		schema.LibrarySavedBook.CreatedAt,
	)

	book.ID = uuidv7.New()

	err := repository.db.QueryRow(context, query,
		book.ID, book.OwnerID, book.BookID, book.Title, book.Authors,
		book.Description, book.ImageURL, book.InfoLink,
	).Scan(&book.CreatedAt)

	return dberr.Wrap(err, "create_saved_book")
}

// ListByOwner performs a keyset scan over (ownerid, id DESC). Row ids are
// UUIDv7, so descending id order equals descending save-time order. It
// fetches one row beyond the page to learn whether more exist; the cursor is
// inclusive — the extra row's id is where the next page starts.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, afterID string, limit int) ([]*SavedBook, string, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.LibrarySavedBook.ID, schema.LibrarySavedBook.OwnerID, schema.LibrarySavedBook.BookID,
		schema.LibrarySavedBook.Title, schema.LibrarySavedBook.Authors, schema.LibrarySavedBook.Description,
		schema.LibrarySavedBook.ImageURL, schema.LibrarySavedBook.InfoLink, schema.LibrarySavedBook.CreatedAt,
		schema.LibrarySavedBook.Table, schema.LibrarySavedBook.OwnerID,
	)

	args := []any{ownerID}

	if afterID != "" {
		query += fmt.Sprintf(` AND %s <= $2`, schema.LibrarySavedBook.ID)
		args = append(args, afterID)
	}

	query += fmt.Sprintf(` ORDER BY %s DESC LIMIT $%d`, schema.LibrarySavedBook.ID, len(args)+1)
	args = append(args, limit+1)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, "", dberr.Wrap(err, "list_saved_books")
	}
	defer rows.Close()

	var books []*SavedBook
	for rows.Next() {
		book := &SavedBook{}
		if err := rows.Scan(
			&book.ID, &book.OwnerID, &book.BookID, &book.Title, &book.Authors,
			&book.Description, &book.ImageURL, &book.InfoLink, &book.CreatedAt,
		); err != nil {
			return nil, "", dberr.Wrap(err, "scan_saved_book")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, "", dberr.Wrap(err, "list_saved_books")
	}

	nextAfterID := ""
	if len(books) > limit {
		nextAfterID = books[limit].ID
		books = books[:limit]
	}

	return books, nextAfterID, nil
}

// DeleteByOwnerAndBook removes the owner's copy of a book and reports how
// many rows went away. Deleting an absent or not-owned book is not an error.
func (repository *PostgresRepository) DeleteByOwnerAndBook(context context.Context, ownerID, bookID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibrarySavedBook.Table, schema.LibrarySavedBook.OwnerID, schema.LibrarySavedBook.BookID,
	)

	cmd, err := repository.db.Exec(context, query, ownerID, bookID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_saved_book")
	}

	return cmd.RowsAffected(), nil
}
