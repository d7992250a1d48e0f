package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"docqa/internal/domain"
)

// QueryCache memoizes answers per (document, question, k). Entries
// expire after a TTL and the least recently used entry is evicted at
// capacity. Deleting or replacing a document bumps its generation,
// which orphans every cached answer for it without scanning the map.
type QueryCache struct {
	mu          sync.Mutex
	maxSize     int
	ttl         time.Duration
	entries     map[string]*cacheEntry
	order       []string
	generations map[string]uint64
}

type cacheEntry struct {
	answer    domain.Answer
	docID     string
	gen       uint64
	expiresAt time.Time
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &QueryCache{
		maxSize:     maxSize,
		ttl:         ttl,
		entries:     make(map[string]*cacheEntry),
		generations: make(map[string]uint64),
	}
}

func cacheKey(docID, question string, k int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", docID, question, k)))
	return hex.EncodeToString(h[:])
}

// Get returns a cached answer, or false when absent, expired or
// invalidated.
func (c *QueryCache) Get(docID, question string, k int) (domain.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(docID, question, k)
	entry, ok := c.entries[key]
	if !ok {
		return domain.Answer{}, false
	}
	if entry.gen != c.generations[docID] || time.Now().After(entry.expiresAt) {
		c.remove(key)
		return domain.Answer{}, false
	}
	c.touch(key)
	return entry.answer, true
}

// Put stores an answer under the document's current generation.
func (c *QueryCache) Put(docID, question string, k int, answer domain.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(docID, question, k)
	if _, ok := c.entries[key]; ok {
		c.touch(key)
	} else {
		if len(c.entries) >= c.maxSize {
			c.remove(c.order[0])
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = &cacheEntry{
		answer:    answer,
		docID:     docID,
		gen:       c.generations[docID],
		expiresAt: time.Now().Add(c.ttl),
	}
}

// InvalidateDoc drops all cached answers for a document.
func (c *QueryCache) InvalidateDoc(docID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[docID]++
}

func (c *QueryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// touch moves a key to the most recently used position. Callers hold
// the lock.
func (c *QueryCache) touch(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

// remove deletes a key from the map and the order slice. Callers hold
// the lock.
func (c *QueryCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
