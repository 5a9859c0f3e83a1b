package catalog

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
)

// Searcher is the outbound catalog dependency of the aggregator.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults, startIndex int) ([]BookRecord, error)
}

type Service struct {
	catalog Searcher
	logger  *slog.Logger
}

func NewService(catalog Searcher, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Search validates the request, fetches exactly one provider page, and
// returns it deduplicated with pagination bookkeeping applied.
//
// Multi-page traversal is the caller's responsibility via repeated calls
// with an increasing start index.
func (service *Service) Search(ctx context.Context, query string, maxResults, startIndex int) (*SearchPage, error) {
	validator := &validate.Validator{}

	validator.Required(FieldQuery, query)
	validator.Range(FieldMaxResults, maxResults, 1, constants.MaxSearchResults)
	validator.Custom(FieldStartIndex, startIndex < 0, "Must be zero or greater")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	records, err := service.catalog.Search(ctx, query, maxResults, startIndex)
	if err != nil {
		return nil, err
	}

	// The continuation heuristic looks at the raw count before dedup: a full
	// provider page means more results probably exist.
	rawCount := len(records)

	seen := make(map[string]struct{}, rawCount)
	items := make([]BookRecord, 0, rawCount)
	for _, record := range records {
		if _, duplicate := seen[record.BookID]; duplicate {
			continue
		}
		seen[record.BookID] = struct{}{}
		items = append(items, record)
	}

	service.logger.Debug("catalog_search",
		slog.String("query", query),
		slog.Int("raw_count", rawCount),
		slog.Int("deduplicated_count", len(items)),
	)

	return &SearchPage{
		Items:    items,
		PageSize: maxResults,
		Offset:   startIndex,
		HasMore:  rawCount == maxResults,
	}, nil
}
