package schema

// LibrarySavedBookTable represents the 'library.saved_book' table
type LibrarySavedBookTable struct {
	Table       string
	ID          string
	OwnerID     string
	BookID      string
	Title       string
	Authors     string
	Description string
	ImageURL    string
	InfoLink    string
	CreatedAt   string
}

// LibrarySavedBook is the schema definition for library.saved_book
var LibrarySavedBook = LibrarySavedBookTable{
	Table:       "library.saved_book",
	ID:          "id",
	OwnerID:     "ownerid",
	BookID:      "bookid",
	Title:       "title",
	Authors:     "authors",
	Description: "description",
	ImageURL:    "imageurl",
	InfoLink:    "infolink",
	CreatedAt:   "createdat",
}

func (t LibrarySavedBookTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.BookID, t.Title, t.Authors, t.Description, t.ImageURL,
		t.InfoLink, t.CreatedAt,
	}
}
