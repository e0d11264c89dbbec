package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUByteBoundEviction(t *testing.T) {
	s := newLRUStore(levelConfig{maxBytes: 1000})
	now := time.Now()
	for i := 0; i < 4; i++ {
		s.put(&Entry{Key: fmt.Sprintf("k%d", i), WrittenAt: now, SizeBytes: 300})
	}
	// The fourth insert pushes the tier to 1200 bytes; the oldest entry
	// goes to bring it back under the 1000-byte bound.
	stats := s.stats()
	assert.Equal(t, 3, stats.Size)
	assert.LessOrEqual(t, stats.TotalBytes, int64(1000))
	assert.Equal(t, int64(1), stats.Evictions)
	_, found := s.get("k0", now)
	assert.False(t, found)
	_, found = s.get("k3", now)
	assert.True(t, found)
}

func TestLRUOversizedEntrySurvivesAlone(t *testing.T) {
	s := newLRUStore(levelConfig{maxBytes: 100})
	now := time.Now()
	s.put(&Entry{Key: "big", WrittenAt: now, SizeBytes: 500})
	// A single entry larger than the bound is kept; evicting the value we
	// just wrote would make every oversized write a silent no-op.
	_, found := s.get("big", now)
	assert.True(t, found)
}

func TestLRUUpdateInPlaceAdjustsBytes(t *testing.T) {
	s := newLRUStore(levelConfig{maxEntries: 10})
	now := time.Now()
	s.put(&Entry{Key: "k", Value: "a", WrittenAt: now, SizeBytes: 100})
	s.put(&Entry{Key: "k", Value: "b", WrittenAt: now, SizeBytes: 250})

	stats := s.stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(250), stats.TotalBytes)
	e, found := s.get("k", now)
	require.True(t, found)
	assert.Equal(t, "b", e.Value)
}

func TestLRUSweepRemovesOnlyExpired(t *testing.T) {
	s := newLRUStore(levelConfig{maxEntries: 10})
	now := time.Now()
	s.put(&Entry{Key: "stale", WrittenAt: now, TTL: time.Second, SizeBytes: 10})
	s.put(&Entry{Key: "fresh", WrittenAt: now, TTL: time.Hour, SizeBytes: 10})
	s.put(&Entry{Key: "forever", WrittenAt: now, SizeBytes: 10})

	removed := s.sweep(now.Add(2 * time.Second))
	assert.Equal(t, 1, removed)

	stats := s.stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, int64(20), stats.TotalBytes)
	assert.Equal(t, int64(1), stats.Expirations)
	// Sweep removals are expirations, not evictions, and not misses.
	assert.Zero(t, stats.Evictions)
	assert.Zero(t, stats.Misses)
}

func TestLRURemovePrefix(t *testing.T) {
	s := newLRUStore(levelConfig{maxEntries: 10})
	now := time.Now()
	s.put(&Entry{Key: "plan:1", WrittenAt: now})
	s.put(&Entry{Key: "plan:2", WrittenAt: now})
	s.put(&Entry{Key: "step:1", WrittenAt: now})

	assert.Equal(t, 2, s.removePrefix("plan:"))
	assert.Equal(t, 1, s.stats().Size)
	assert.Equal(t, 0, s.removePrefix("plan:"))
}

func TestLRUPressureEvictOrder(t *testing.T) {
	s := newLRUStore(levelConfig{})
	now := time.Now()
	for i := 0; i < 4; i++ {
		s.put(&Entry{Key: fmt.Sprintf("k%d", i), WrittenAt: now, SizeBytes: 100})
	}
	// Touch k0 so it is the most recently used and survives the squeeze.
	_, found := s.get("k0", now)
	require.True(t, found)

	evicted := s.pressureEvict(200)
	assert.Equal(t, 2, evicted)
	_, found = s.get("k0", now)
	assert.True(t, found)
	_, found = s.get("k1", now)
	assert.False(t, found)
	assert.LessOrEqual(t, s.totalBytes(), int64(200))
}

func TestLRUFlushKeepsCounters(t *testing.T) {
	s := newLRUStore(levelConfig{maxEntries: 2})
	now := time.Now()
	s.put(&Entry{Key: "a", WrittenAt: now, SizeBytes: 5})
	s.put(&Entry{Key: "b", WrittenAt: now, SizeBytes: 5})
	s.put(&Entry{Key: "c", WrittenAt: now, SizeBytes: 5}) // evicts a
	_, _ = s.get("b", now)
	s.flush()

	stats := s.stats()
	assert.Zero(t, stats.Size)
	assert.Zero(t, stats.TotalBytes)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Evictions)
}
