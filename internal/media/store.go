// internal/media/store.go
//
// Client for the hosted media store.
//
// Context
// -------
// Imported stock photos are re-hosted on the platform's own blob store so
// tenant pages never hot-link third-party origins.  The store accepts a
// binary upload and answers with the public URL and stored byte size.
// Uploads above the store's size ceiling are rejected, so the enrichment
// pipeline resizes first (see resize.go).
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Upload is the store's answer for one stored object.
type Upload struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Store talks to one media-store endpoint.
type Store struct {
	endpoint string
	apiKey   string
	maxBytes int64
	http     *retryablehttp.Client
}

// New returns a ready Store.  maxBytes is the store's upload ceiling.
func New(endpoint, apiKey string, maxBytes int64) *Store {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Store{
		endpoint: endpoint,
		apiKey:   apiKey,
		maxBytes: maxBytes,
		http:     rc,
	}
}

// MaxBytes reports the store's upload ceiling.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Put uploads one image and returns its public URL and stored size.
// Callers must have resized data under MaxBytes first; oversized payloads
// fail locally without a network call.
func (s *Store) Put(ctx context.Context, name string, data []byte) (*Upload, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("media: %s is %d bytes, ceiling is %d", name, len(data), s.maxBytes)
	}

	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, s.endpoint+"/upload", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-File-Name", name)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("media: upload %s: status %d", name, resp.StatusCode)
	}

	var up Upload
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		return nil, fmt.Errorf("media: decode upload %s: %w", name, err)
	}
	if up.URL == "" {
		return nil, fmt.Errorf("media: upload %s: empty URL in response", name)
	}
	return &up, nil
}
