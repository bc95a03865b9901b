package priority

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	priority int
	expires  time.Time
}

// Resolver caches source priorities for the duration of a run.
type Resolver struct {
	table    Table
	ttl      time.Duration
	fallback int
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]entry
	sf    singleflight.Group
}

// NewResolver creates a resolver over table.
func NewResolver(table Table, cfg Config, logger *zap.Logger) *Resolver {
	return &Resolver{
		table:    table,
		ttl:      time.Duration(cfg.CacheTTLSeconds) * time.Second,
		fallback: cfg.DefaultPriority,
		logger:   logger,
		now:      time.Now,
		cache:    make(map[string]entry),
	}
}

// PriorityOf returns the priority of source. Unknown sources and failed lookups get the
// default priority; failures are not cached so the next call retries.
func (r *Resolver) PriorityOf(ctx context.Context, source string) int {
	key := strings.ToLower(strings.TrimSpace(source))

	// Fast path: fresh cache entry
	r.mu.RLock()
	e, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && r.now().Before(e.expires) {
		return e.priority
	}

	// Slow path: one lookup per source even under concurrent misses
	v, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight
		r.mu.RLock()
		e, ok := r.cache[key]
		r.mu.RUnlock()
		if ok && r.now().Before(e.expires) {
			return e.priority, nil
		}

		p, found, err := r.table.PriorityOf(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			p = r.fallback
		}
		r.mu.Lock()
		r.cache[key] = entry{priority: p, expires: r.now().Add(r.ttl)}
		r.mu.Unlock()
		return p, nil
	})
	if err != nil {
		r.logger.Warn("Priority lookup failed, using default",
			zap.String("source", key),
			zap.Int("default", r.fallback),
			zap.Error(err))
		return r.fallback
	}
	return v.(int)
}

// Reset drops every cached priority. Catalog runs call it before they start.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]entry)
	r.mu.Unlock()
}
