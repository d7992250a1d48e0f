package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestQueryCache_PutGet(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	answer := domain.Answer{Text: "Paris.", Confidence: 0.9}

	_, ok := c.Get("d1", "capital of france?", 5)
	assert.False(t, ok)

	c.Put("d1", "capital of france?", 5, answer)

	got, ok := c.Get("d1", "capital of france?", 5)
	require.True(t, ok)
	assert.Equal(t, answer, got)

	// Different k is a different key.
	_, ok = c.Get("d1", "capital of france?", 3)
	assert.False(t, ok)
}

func TestQueryCache_TTLExpiry(t *testing.T) {
	c := NewQueryCache(10, 10*time.Millisecond)
	c.Put("d1", "q", 5, domain.Answer{Text: "a"})

	_, ok := c.Get("d1", "q", 5)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("d1", "q", 5)
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}

func TestQueryCache_LRUEviction(t *testing.T) {
	c := NewQueryCache(2, time.Minute)
	c.Put("d1", "q1", 5, domain.Answer{Text: "a1"})
	c.Put("d1", "q2", 5, domain.Answer{Text: "a2"})

	// Touch q1 so q2 becomes the eviction candidate.
	_, ok := c.Get("d1", "q1", 5)
	require.True(t, ok)

	c.Put("d1", "q3", 5, domain.Answer{Text: "a3"})
	assert.Equal(t, 2, c.Size())

	_, ok = c.Get("d1", "q2", 5)
	assert.False(t, ok)
	_, ok = c.Get("d1", "q1", 5)
	assert.True(t, ok)
	_, ok = c.Get("d1", "q3", 5)
	assert.True(t, ok)
}

func TestQueryCache_InvalidateDoc(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("d1", "q", 5, domain.Answer{Text: "a"})
	c.Put("d2", "q", 5, domain.Answer{Text: "b"})

	c.InvalidateDoc("d1")

	_, ok := c.Get("d1", "q", 5)
	assert.False(t, ok)

	got, ok := c.Get("d2", "q", 5)
	require.True(t, ok)
	assert.Equal(t, "b", got.Text)
}

func TestQueryCache_CapacityChurn(t *testing.T) {
	c := NewQueryCache(5, time.Minute)
	for i := 0; i < 20; i++ {
		c.Put("d1", fmt.Sprintf("q%d", i), 5, domain.Answer{Text: "a"})
	}
	assert.Equal(t, 5, c.Size())
}
