package cache

import (
	"strings"
	"sync"
	"time"
)

// ringStore is the fixed-capacity circular buffer backing L4. Writes claim
// the next slot in insertion order, overwriting whatever lives there once
// the ring has wrapped. Reads scan newest to oldest and never reorder the
// ring; TTL expiry is the only way an entry leaves other than being
// overwritten. The ring answers "has this decision been seen recently", so
// its value is its recency window, not point-lookup speed — the linear scan
// is bounded by the small fixed capacity.
type ringStore struct {
	mutex    sync.Mutex
	slots    []*Entry
	next     int // slot claimed by the next write
	counters counters
}

var _ tierStore = (*ringStore)(nil)

func newRingStore(cfg levelConfig) *ringStore {
	capacity := cfg.maxEntries
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &ringStore{slots: make([]*Entry, capacity)}
}

func (s *ringStore) get(key string, now time.Time) (Entry, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	// Newest first: walk backwards from the slot before next.
	n := len(s.slots)
	for i := 0; i < n; i++ {
		idx := ((s.next-1-i)%n + n) % n
		e := s.slots[idx]
		if e == nil || e.Key != key {
			continue
		}
		if e.Expired(now) {
			s.clearSlot(idx)
			s.counters.expirations++
			s.counters.misses++
			return Entry{}, false
		}
		e.HitCount++
		s.counters.hits++
		return *e, true
	}
	s.counters.misses++
	return Entry{}, false
}

func (s *ringStore) put(e *Entry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if old := s.slots[s.next]; old != nil {
		s.counters.bytes -= old.SizeBytes
		s.counters.evictions++
	}
	s.slots[s.next] = e
	s.counters.bytes += e.SizeBytes
	s.next = (s.next + 1) % len(s.slots)
}

func (s *ringStore) remove(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var removed bool
	for i, e := range s.slots {
		if e != nil && e.Key == key {
			s.clearSlot(i)
			removed = true
		}
	}
	return removed
}

func (s *ringStore) removePrefix(prefix string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var removed int
	for i, e := range s.slots {
		if e != nil && strings.HasPrefix(e.Key, prefix) {
			s.clearSlot(i)
			removed++
		}
	}
	return removed
}

func (s *ringStore) flush() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i := range s.slots {
		s.slots[i] = nil
	}
	s.counters.bytes = 0
	s.next = 0
}

func (s *ringStore) sweep(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var removed int
	for i, e := range s.slots {
		if e != nil && e.Expired(now) {
			s.clearSlot(i)
			s.counters.expirations++
			removed++
		}
	}
	return removed
}

func (s *ringStore) stats() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var size int
	for _, e := range s.slots {
		if e != nil {
			size++
		}
	}
	return s.counters.snapshot(size, len(s.slots))
}

// clearSlot empties a slot without moving the write cursor, preserving
// insertion order for the remaining entries. Caller holds the lock.
func (s *ringStore) clearSlot(i int) {
	s.counters.bytes -= s.slots[i].SizeBytes
	s.slots[i] = nil
}
