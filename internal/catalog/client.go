package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark/internal/platform/apperr"
)

const (
	// requestTimeout bounds a single provider call. There is no retry layer:
	// transient provider failures propagate to the caller.
	requestTimeout = 15 * time.Second

	// maxErrorBodyBytes caps how much of a provider error body is kept for logs.
	maxErrorBodyBytes = 512
)

// Client talks to the Google Books volumes endpoint and normalizes its
// responses into [BookRecord] values. It performs exactly one outbound call
// per Search invocation, with no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a catalog client. The API key is held process-wide and
// appended to every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// volumesResponse matches the provider's volumes payload. Only the fields the
// normalizer reads are declared.
type volumesResponse struct {
	Items []volume `json:"items"`
}

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title       string   `json:"title"`
		Authors     []string `json:"authors"`
		Description string   `json:"description"`
		ImageLinks  struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
		InfoLink      string   `json:"infoLink"`
		PublishedDate string   `json:"publishedDate"`
		Publisher     string   `json:"publisher"`
		Categories    []string `json:"categories"`
		PageCount     int      `json:"pageCount"`
		Language      string   `json:"language"`
	} `json:"volumeInfo"`
}

// Search performs one provider call and returns the normalized records.
//
// Bounds checking belongs to the [Service]; the client trusts its arguments.
// Any non-success status or malformed payload surfaces as an upstream error
// carrying the provider's status and text for diagnostics.
func (client *Client) Search(ctx context.Context, query string, maxResults, startIndex int) ([]BookRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", client.apiKey)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(startIndex))

	requestURL := client.baseURL + "/volumes?" + params.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to build request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("catalog: provider request failed: %w", err))
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		return nil, apperr.Upstream(fmt.Errorf("catalog: provider returned status %d: %s", response.StatusCode, strings.TrimSpace(string(snippet))))
	}

	var payload volumesResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("catalog: malformed provider payload: %w", err))
	}

	records := make([]BookRecord, 0, len(payload.Items))
	for _, item := range payload.Items {
		records = append(records, normalizeVolume(item))
	}

	return records, nil
}

// normalizeVolume hides the provider's field names and absence conventions.
//
// Missing authors become an empty slice, missing strings become "", and
// insecure thumbnail URLs are rewritten to https. Items without a title are
// kept: partial records are the caller's problem to present, not ours to drop.
func normalizeVolume(item volume) BookRecord {
	info := item.VolumeInfo

	authors := info.Authors
	if authors == nil {
		authors = []string{}
	}

	return BookRecord{
		BookID:        item.ID,
		Title:         info.Title,
		Authors:       authors,
		Description:   info.Description,
		ImageURL:      secureURL(info.ImageLinks.Thumbnail),
		InfoLink:      info.InfoLink,
		PublishedDate: info.PublishedDate,
		Publisher:     info.Publisher,
		Categories:    info.Categories,
		PageCount:     info.PageCount,
		Language:      info.Language,
	}
}

// secureURL rewrites the insecure scheme to https. The provider still serves
// thumbnail links over plain http.
func secureURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") {
		return "https://" + strings.TrimPrefix(rawURL, "http://")
	}
	return rawURL
}
