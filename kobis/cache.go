package kobis

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachedDetails memoizes movie details. Concurrent lookups of the same
// movie share one upstream request; failures are not cached.
type CachedDetails struct {
	fetcher DetailFetcher
	group   singleflight.Group

	mu      sync.RWMutex
	entries map[string]*MovieDetail
}

// NewCachedDetails wraps fetcher with a detail cache
func NewCachedDetails(fetcher DetailFetcher) *CachedDetails {
	return &CachedDetails{
		fetcher: fetcher,
		entries: make(map[string]*MovieDetail),
	}
}

// MovieDetail returns the cached record or fetches it. The shared fetch is
// detached from any one caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (c *CachedDetails) MovieDetail(ctx context.Context, movieCd string) (*MovieDetail, error) {
	c.mu.RLock()
	detail, ok := c.entries[movieCd]
	c.mu.RUnlock()
	if ok {
		return detail, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	results := c.group.DoChan(movieCd, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.entries[movieCd]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		detail, err := c.fetcher.MovieDetail(fetchCtx, movieCd)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[movieCd] = detail
		c.mu.Unlock()
		return detail, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*MovieDetail), nil
	}
}

// Forget drops a cached record
func (c *CachedDetails) Forget(movieCd string) {
	c.mu.Lock()
	delete(c.entries, movieCd)
	c.mu.Unlock()
}

// Len returns the number of cached records
func (c *CachedDetails) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
