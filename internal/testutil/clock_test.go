package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_Frozen(t *testing.T) {
	start := Day(2025, time.December, 8)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now())
}

func TestFixedClock_SetAndAdvance(t *testing.T) {
	clock := NewFixedClock(Day(2025, time.December, 8))

	clock.Advance(24 * time.Hour)
	assert.Equal(t, Day(2025, time.December, 9), clock.Now())

	clock.Set(Day(2026, time.January, 1))
	assert.Equal(t, Day(2026, time.January, 1), clock.Now())
}

func TestFixedClock_ThreadSafe(t *testing.T) {
	clock := NewFixedClock(time.Unix(0, 0))
	const numGoroutines = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, time.Unix(numGoroutines, 0), clock.Now())
}

func TestFixedIDGenerator(t *testing.T) {
	assert.Equal(t, "req-1", NewFixedIDGenerator("req-1").Generate())
	assert.Equal(t, "test-request-default", NewFixedIDGenerator("").Generate())
}

func TestDocument(t *testing.T) {
	doc := Document("20251207", "20251208")
	assert.Equal(t, "20251207", doc.StartDate)
	assert.Len(t, doc.Words, 2)
	assert.Equal(t, 2, doc.Words[1].ID)
	assert.Equal(t, "word2", doc.Words[1].Word)

	c := Collection("20251207")
	w, ok := c.ByName("WORD1")
	assert.True(t, ok)
	assert.Equal(t, "20251207", w.Date)
}
