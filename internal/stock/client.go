// internal/stock/client.go
//
// Client for the external stock-photo search API.
//
// Context
// -------
// The enrichment pipeline asks this API for royalty-free photo candidates
// matching a derived text query.  The API is a plain JSON-over-HTTPS
// search endpoint: free-text query, pagination, and license/orientation
// filters in the query string, API key in the Authorization header, and a
// ranked `photos` array with stable numeric ids in the response.
//
// Retries with backoff are handled by retryablehttp; one failed query
// must never abort an enrichment batch, so callers treat an error return
// as an empty candidate set.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultPerPage = 10

	// Site imagery is overwhelmingly landscape hero/section art, so the
	// filter is fixed rather than configurable per slot.
	orientation = "landscape"
	license     = "free"
)

// Photo is one ranked search candidate.  ID is stable across searches,
// which is what lets the pipeline guarantee no photo is used twice in a
// run even when two queries return overlapping results.
type Photo struct {
	ID     uint64 `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt"`
}

type searchResponse struct {
	Photos []Photo `json:"photos"`
}

// Client talks to one stock-photo API endpoint.
type Client struct {
	endpoint string
	apiKey   string
	perPage  int
	http     *retryablehttp.Client
}

// New returns a ready Client.  perPage ≤ 0 selects the default.
func New(endpoint, apiKey string, perPage int) *Client {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil // zap covers request logging at the call sites

	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		perPage:  perPage,
		http:     rc,
	}
}

// Search returns ranked candidates for a free-text query.  An empty query
// returns no candidates without a network call.
func (c *Client) Search(ctx context.Context, query string) ([]Photo, error) {
	if query == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("orientation", orientation)
	q.Set("license", license)

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodGet, c.endpoint+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("stock: search %q: status %d", query, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("stock: decode search %q: %w", query, err)
	}
	return sr.Photos, nil
}

// Download fetches one photo's bytes.  The pipeline re-uploads them to
// the tenant media store; originals are never hot-linked.
func (c *Client) Download(ctx context.Context, photoURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock: download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
