package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/fleacr/WebScraperYCombinator/models"
)

// entry holds cached profile details with their creation timestamp.
type entry struct {
	details   models.ProfileDetails
	createdAt time.Time
}

// Cache is an in-memory cache of extracted profile details, keyed by
// profile URL. It prevents re-rendering a profile page when the listing
// repeats a company. Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache holding up to maxEntries profile results, each valid
// for ttl. A background goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key derives the cache key from a profile URL.
func Key(profileURL string) string {
	h := sha256.Sum256([]byte(profileURL))
	return hex.EncodeToString(h[:])
}

// Get retrieves cached profile details if present and younger than the TTL.
func (c *Cache) Get(key string) (models.ProfileDetails, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return models.ProfileDetails{}, false
	}
	if time.Since(e.createdAt) > c.ttl {
		return models.ProfileDetails{}, false
	}
	return e.details, true
}

// Set stores profile details in the cache. If the cache is at capacity,
// a random entry is evicted to make room.
func (c *Cache) Set(key string, details models.ProfileDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		details:   details,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
