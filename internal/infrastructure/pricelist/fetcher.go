package pricelist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/infrastructure/config"
)

// Fetcher retrieves a price list document from a supplier URL
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches price lists over HTTP with a timeout and a size cap
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a new HTTPFetcher from import settings
func NewHTTPFetcher(cfg config.ImportConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		maxBytes: cfg.MaxDocumentMB * 1024 * 1024,
	}
}

// Fetch downloads the document at rawURL. Unreachable hosts, non-2xx
// responses and oversized documents are all upstream fetch failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, shared.NewDomainError("INVALID_URL", "URL must be a valid http or https address")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", shared.ErrUpstreamFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamFetch, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", shared.ErrUpstreamFetch, f.maxBytes)
	}

	return body, nil
}

// Ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)
