// Package topologycache provides a TTL cache for built topology graphs per
// requested window.
package topologycache

import (
	"fmt"
	"sync"
	"time"

	"github.com/tracewatch/tracewatch-backend/internal/models"
	"github.com/tracewatch/tracewatch-backend/internal/pkg/metrics"
)

type entry struct {
	topology *models.Topology
	expAt    time.Time
}

// Cache holds topology graphs by (step, start, end) with TTL. Thread-safe.
type Cache struct {
	ttl   time.Duration
	mu    sync.RWMutex
	store map[string]*entry
}

// New returns a cache with the given TTL. If ttl <= 0, Get always misses
// (cache disabled).
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:   ttl,
		store: make(map[string]*entry),
	}
}

func key(step models.Step, start, end int64) string {
	return fmt.Sprintf("%s|%d|%d", step, start, end)
}

// Get returns a cached topology if the window exists and is not expired.
// Records hit/miss.
func (c *Cache) Get(step models.Step, start, end int64) (*models.Topology, bool) {
	if c.ttl <= 0 {
		metrics.TopologyCacheMissesTotal.Inc()
		return nil, false
	}
	k := key(step, start, end)
	c.mu.RLock()
	e, ok := c.store[k]
	c.mu.RUnlock()
	if !ok || e == nil || time.Now().After(e.expAt) {
		metrics.TopologyCacheMissesTotal.Inc()
		return nil, false
	}
	metrics.TopologyCacheHitsTotal.Inc()
	return e.topology, true
}

// Set stores the topology for the window.
func (c *Cache) Set(step models.Step, start, end int64, topology *models.Topology) {
	if c.ttl <= 0 || topology == nil {
		return
	}
	k := key(step, start, end)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = &entry{topology: topology, expAt: time.Now().Add(c.ttl)}
}

// Purge drops every cached window.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*entry)
}
