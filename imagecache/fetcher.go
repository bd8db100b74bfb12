package imagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves raw encoded image bytes for a URL. Decoding is the
// presentation layer's concern.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type DefaultFetcher struct {
	client *http.Client
}

func NewDefaultFetcher() *DefaultFetcher {
	return &DefaultFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (fetcher *DefaultFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	response, err := fetcher.client.Do(request)

	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, response.StatusCode)
	}

	return io.ReadAll(response.Body)
}

// Verify implements Fetcher
var _ Fetcher = (*DefaultFetcher)(nil)
