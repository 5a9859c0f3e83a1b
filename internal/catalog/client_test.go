package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

/*
TestClient_Search_Normalization verifies that provider volumes are mapped into
records with absence conventions applied: missing authors become an empty
slice, insecure thumbnail links are rewritten to https, and titleless items
are kept.
*/
func TestClient_Search_Normalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"items": [
				{
					"id": "vol-1",
					"volumeInfo": {
						"title": "Dune",
						"authors": ["Frank Herbert"],
						"description": "A desert planet.",
						"imageLinks": {"thumbnail": "http://books.example.com/dune.jpg"},
						"infoLink": "https://books.example.com/dune"
					}
				},
				{
					"id": "vol-2",
					"volumeInfo": {
						"description": "No title, no authors."
					}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	records, err := client.Search(context.Background(), "dune", 12, 0)

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "vol-1", records[0].BookID)
	assert.Equal(t, "Dune", records[0].Title)
	assert.Equal(t, []string{"Frank Herbert"}, records[0].Authors)
	assert.Equal(t, "https://books.example.com/dune.jpg", records[0].ImageURL)

	assert.Equal(t, "vol-2", records[1].BookID)
	assert.Empty(t, records[1].Title)
	assert.NotNil(t, records[1].Authors)
	assert.Empty(t, records[1].Authors)
}

/*
TestClient_Search_QueryParams verifies the outbound request carries the query,
the API key, and the paging parameters.
*/
func TestClient_Search_QueryParams(t *testing.T) {
	var gotQuery, gotKey, gotMax, gotStart string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotQuery = request.URL.Query().Get("q")
		gotKey = request.URL.Query().Get("key")
		gotMax = request.URL.Query().Get("maxResults")
		gotStart = request.URL.Query().Get("startIndex")

		_, _ = writer.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	records, err := client.Search(context.Background(), "golang", 20, 40)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "golang", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "20", gotMax)
	assert.Equal(t, "40", gotStart)
}

/*
TestClient_Search_UpstreamFailures verifies that every provider-side failure
mode surfaces as an upstream error with the stable code and message.
*/
func TestClient_Search_UpstreamFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non_200_status",
			handler: func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusTooManyRequests)
				_, _ = writer.Write([]byte(`{"error": "rate limit exceeded"}`))
			},
		},
		{
			name: "malformed_payload",
			handler: func(writer http.ResponseWriter, request *http.Request) {
				_, _ = writer.Write([]byte(`{"items": [`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := NewClient(server.URL, "test-key")

			_, err := client.Search(context.Background(), "dune", 12, 0)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
			assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
		})
	}
}

func TestClient_Search_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	server.Close() // closed up front so the dial fails

	client := NewClient(server.URL, "test-key")

	_, err := client.Search(context.Background(), "dune", 12, 0)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
}
