package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

// fakeSearcher returns a canned page and records whether it was called.
type fakeSearcher struct {
	records []BookRecord
	err     error
	calls   int
}

func (searcher *fakeSearcher) Search(_ context.Context, _ string, _, _ int) ([]BookRecord, error) {
	searcher.calls++
	if searcher.err != nil {
		return nil, searcher.err
	}
	return searcher.records, nil
}

func record(id, title string) BookRecord {
	return BookRecord{BookID: id, Title: title, Authors: []string{}}
}

/*
TestService_Search_Validation verifies that malformed requests are rejected
before any provider call is made. Out-of-range values are errors, never
silently clamped.
*/
func TestService_Search_Validation(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		maxResults int
		startIndex int
	}{
		{name: "empty_query", query: "", maxResults: 12, startIndex: 0},
		{name: "zero_max_results", query: "dune", maxResults: 0, startIndex: 0},
		{name: "max_results_above_cap", query: "dune", maxResults: 41, startIndex: 0},
		{name: "negative_start_index", query: "dune", maxResults: 12, startIndex: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			service := NewService(searcher, slog.Default())

			_, err := service.Search(context.Background(), tc.query, tc.maxResults, tc.startIndex)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Zero(t, searcher.calls, "provider must not be called for invalid input")
		})
	}
}

/*
TestService_Search_Deduplication verifies that repeated provider ids collapse
to the first occurrence, preserving order, and that the continuation flag is
computed from the raw count before deduplication.
*/
func TestService_Search_Deduplication(t *testing.T) {
	records := make([]BookRecord, 0, 12)
	for i := 0; i < 10; i++ {
		records = append(records, record(fmt.Sprintf("vol-%d", i), fmt.Sprintf("Book %d", i)))
	}
	// A full page of 12 with two repeats of earlier ids.
	records = append(records, record("vol-0", "Book 0 again"), record("vol-3", "Book 3 again"))

	searcher := &fakeSearcher{records: records}
	service := NewService(searcher, slog.Default())

	page, err := service.Search(context.Background(), "dune", 12, 0)

	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "Book 0", page.Items[0].Title, "first occurrence wins")
	assert.Equal(t, "vol-9", page.Items[9].BookID, "order is preserved")
	assert.True(t, page.HasMore, "a full raw page means more results may exist")
	assert.Equal(t, 12, page.PageSize)
	assert.Equal(t, 0, page.Offset)
}

func TestService_Search_LastPage(t *testing.T) {
	searcher := &fakeSearcher{records: []BookRecord{record("vol-1", "Only Book")}}
	service := NewService(searcher, slog.Default())

	page, err := service.Search(context.Background(), "obscure title", 12, 0)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore, "a short raw page ends the traversal")
}

func TestService_Search_EmptyResult(t *testing.T) {
	searcher := &fakeSearcher{records: nil}
	service := NewService(searcher, slog.Default())

	page, err := service.Search(context.Background(), "no such book", 12, 0)

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestService_Search_ProviderError(t *testing.T) {
	searcher := &fakeSearcher{err: apperr.Upstream(fmt.Errorf("provider returned status 500"))}
	service := NewService(searcher, slog.Default())

	_, err := service.Search(context.Background(), "dune", 12, 0)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
}
