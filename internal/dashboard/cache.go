package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/cordexplorer/internal/model"
)

// Loader produces a fresh analysis. It is called on the first request and
// on every reload.
type Loader func(ctx context.Context) (*model.Analysis, error)

// LoadObserver is told about every load attempt.
type LoadObserver func(a *model.Analysis, elapsed time.Duration, err error)

// SessionCache holds the analysis shared by all requests.
//
// The first Get loads it; concurrent first calls wait for that single load.
// The cached analysis is never mutated, only replaced by Reload. A failed
// load is not cached, so the next request retries.
type SessionCache struct {
	mu       sync.RWMutex
	analysis *model.Analysis

	group    singleflight.Group
	load     Loader
	observer LoadObserver
}

// CacheOption configures a SessionCache.
type CacheOption func(*SessionCache)

// WithLoadObserver registers fn to be called after every load.
func WithLoadObserver(fn LoadObserver) CacheOption {
	return func(c *SessionCache) {
		c.observer = fn
	}
}

// NewSessionCache creates an empty cache backed by load.
func NewSessionCache(load Loader, opts ...CacheOption) *SessionCache {
	c := &SessionCache{load: load}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached analysis, loading it first if needed.
func (c *SessionCache) Get(ctx context.Context) (*model.Analysis, error) {
	if a := c.cached(); a != nil {
		return a, nil
	}
	return c.fill(ctx, false)
}

// Reload replaces the cached analysis with a fresh load. On failure the
// previous analysis is kept.
func (c *SessionCache) Reload(ctx context.Context) (*model.Analysis, error) {
	return c.fill(ctx, true)
}

// Loaded reports whether an analysis is cached.
func (c *SessionCache) Loaded() bool {
	return c.cached() != nil
}

func (c *SessionCache) cached() *model.Analysis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.analysis
}

func (c *SessionCache) fill(ctx context.Context, force bool) (*model.Analysis, error) {
	// The load outlives the request that triggered it; other waiters share it.
	ctx = context.WithoutCancel(ctx)

	v, err, _ := c.group.Do("load", func() (any, error) {
		if !force {
			if a := c.cached(); a != nil {
				return a, nil
			}
		}

		start := time.Now()
		a, err := c.load(ctx)
		if c.observer != nil {
			c.observer(a, time.Since(start), err)
		}
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.analysis = a
		c.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Analysis), nil
}
