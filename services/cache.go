package services

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rpupo63/video-portfolio-backend/normalize"
)

var (
	projectCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_project_cache_hits_total",
		Help: "Project list requests served from the in-memory cache.",
	})
	projectCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_project_cache_misses_total",
		Help: "Project list requests that had to query the database.",
	})
)

// listCache keeps normalized project lists keyed by query. A nil cache is
// valid and never hits. Every purge starts a new generation; lists read
// during an older generation are not stored.
type listCache struct {
	lru *expirable.LRU[string, []normalize.ProjectResponse]

	mu         sync.Mutex
	generation uint64
}

func newListCache(size int, ttl time.Duration) *listCache {
	if size <= 0 || ttl <= 0 {
		return nil
	}
	return &listCache{lru: expirable.NewLRU[string, []normalize.ProjectResponse](size, nil, ttl)}
}

func (c *listCache) get(key string) ([]normalize.ProjectResponse, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.lru.Get(key)
	if ok {
		projectCacheHits.Inc()
		return val, true
	}
	projectCacheMisses.Inc()
	return nil, false
}

// current returns the generation to pass to set for a read starting now.
func (c *listCache) current() uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// set stores projects unless a purge happened since generation was read.
func (c *listCache) set(key string, projects []normalize.ProjectResponse, generation uint64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.lru.Add(key, projects)
}

// purge drops every cached list; any write can change every list.
func (c *listCache) purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.lru.Purge()
}
