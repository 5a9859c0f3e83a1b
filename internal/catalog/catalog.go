package catalog

// BookRecord is the canonical, provider-neutral shape of a catalog search hit.
//
// It is transient: nothing is persisted until the user saves the book into
// their collection. BookID is the provider-assigned volume identifier and is
// stable across pages.
type BookRecord struct {
	BookID      string   `json:"book_id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	InfoLink    string   `json:"info_link"`

	// Supplementary provider fields, passed through when present.
	PublishedDate string   `json:"published_date,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Language      string   `json:"language,omitempty"`
}

// SearchPage is a bounded batch of search results plus a continuation signal.
type SearchPage struct {
	// Items is deduplicated by BookID within the page, first occurrence wins.
	Items []BookRecord `json:"items"`
	// PageSize is the requested maximum, not the returned count.
	PageSize int `json:"page_size"`
	// Offset is the zero-based index into the provider's result space.
	Offset int `json:"offset"`
	// HasMore is true iff the provider returned a full page before dedup.
	// The provider does not report totals reliably, so this is a heuristic:
	// it is wrong exactly when the result count is a multiple of PageSize.
	HasMore bool `json:"has_more"`
}

// Global field names for validation
const (
	FieldQuery      = "q"
	FieldMaxResults = "max_results"
	FieldStartIndex = "start_index"
)
