package imagecache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// DefaultCapacity bounds the cache to a handful of images; the buffer
// window rarely holds more in flight at once.
const DefaultCapacity = 10

type fetchResult struct {
	data []byte
	err  error
}

// Cache is a bounded, recency-evicting store in front of a Fetcher.
// Concurrent fetches of the same URL are coalesced into one request.
// Failures are not cached; the next Fetch retries.
type Cache struct {
	fetcher Fetcher
	logger  zerolog.Logger
	entries *lru.Cache[string, []byte]

	mutex    sync.Mutex
	inflight map[string][]chan fetchResult
}

func New(fetcher Fetcher, capacity int, logger zerolog.Logger) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	entries, err := lru.New[string, []byte](capacity)

	if err != nil {
		return nil, err
	}

	return &Cache{
		fetcher:  fetcher,
		logger:   logger,
		entries:  entries,
		inflight: make(map[string][]chan fetchResult),
	}, nil
}

// Fetch returns the image bytes for url, from cache when possible. A
// cancelled context aborts the wait but never poisons the cache for other
// callers of the same URL.
func (cache *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := cache.entries.Get(url); ok {
		return data, nil
	}

	cache.mutex.Lock()

	waiter := make(chan fetchResult, 1)

	if waiters, loading := cache.inflight[url]; loading {
		cache.inflight[url] = append(waiters, waiter)
		cache.mutex.Unlock()
	} else {
		cache.inflight[url] = []chan fetchResult{waiter}
		cache.mutex.Unlock()

		go cache.fetchAndBroadcast(url)
	}

	select {
	case result := <-waiter:
		return result.data, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Contains reports whether url is cached, without touching recency.
func (cache *Cache) Contains(url string) bool {
	return cache.entries.Contains(url)
}

func (cache *Cache) Len() int {
	return cache.entries.Len()
}

// Purge drops all cached entries.
func (cache *Cache) Purge() {
	cache.entries.Purge()
}

func (cache *Cache) fetchAndBroadcast(url string) {
	// The fetch outlives any single waiter's context on purpose: a
	// completed download is worth caching even if the requester left.
	data, err := cache.fetcher.Fetch(context.Background(), url)

	if err != nil {
		cache.logger.Warn().Err(err).Str("url", url).Msg("image fetch failed")
	} else {
		cache.entries.Add(url, data)
	}

	cache.mutex.Lock()
	waiters := cache.inflight[url]
	delete(cache.inflight, url)
	cache.mutex.Unlock()

	for _, waiter := range waiters {
		waiter <- fetchResult{data: data, err: err}
	}
}
