package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// lruStore is the bounded LRU storage used by L1, L2 and L3. A doubly-linked
// list orders entries by recency (front = most recent) and a map gives O(1)
// lookup into it. Capacity can be bounded by entry count, by estimated
// bytes, or both; overflowing either bound evicts from the back of the list.
type lruStore struct {
	mutex      sync.Mutex
	elements   map[string]*list.Element
	order      *list.List // of *Entry
	maxEntries int
	maxBytes   int64
	counters   counters
}

var _ tierStore = (*lruStore)(nil)

func newLRUStore(cfg levelConfig) *lruStore {
	return &lruStore{
		elements:   make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: cfg.maxEntries,
		maxBytes:   cfg.maxBytes,
	}
}

func (s *lruStore) get(key string, now time.Time) (Entry, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	el, ok := s.elements[key]
	if !ok {
		s.counters.misses++
		return Entry{}, false
	}
	e := el.Value.(*Entry)
	if e.Expired(now) {
		// Lazy expiry: drop it and report a miss so the cascade continues.
		s.deleteElement(el)
		s.counters.expirations++
		s.counters.misses++
		return Entry{}, false
	}
	e.HitCount++
	s.order.MoveToFront(el)
	s.counters.hits++
	return *e, true
}

func (s *lruStore) put(e *Entry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if el, ok := s.elements[e.Key]; ok {
		old := el.Value.(*Entry)
		s.counters.bytes += e.SizeBytes - old.SizeBytes
		el.Value = e
		s.order.MoveToFront(el)
	} else {
		s.elements[e.Key] = s.order.PushFront(e)
		s.counters.bytes += e.SizeBytes
	}
	s.evictOverflow()
}

// evictOverflow removes least-recently-used entries until both bounds hold.
// Caller holds the lock.
func (s *lruStore) evictOverflow() {
	for (s.maxEntries > 0 && s.order.Len() > s.maxEntries) ||
		(s.maxBytes > 0 && s.counters.bytes > s.maxBytes && s.order.Len() > 1) {
		back := s.order.Back()
		if back == nil {
			return
		}
		s.deleteElement(back)
		s.counters.evictions++
	}
}

func (s *lruStore) remove(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	el, ok := s.elements[key]
	if ok {
		s.deleteElement(el)
	}
	return ok
}

func (s *lruStore) removePrefix(prefix string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var removed int
	for key, el := range s.elements {
		if strings.HasPrefix(key, prefix) {
			s.deleteElement(el)
			removed++
		}
	}
	return removed
}

func (s *lruStore) flush() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.elements = make(map[string]*list.Element)
	s.order.Init()
	s.counters.bytes = 0
}

func (s *lruStore) sweep(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var removed int
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*Entry).Expired(now) {
			s.deleteElement(el)
			s.counters.expirations++
			removed++
		}
		el = next
	}
	return removed
}

func (s *lruStore) stats() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.counters.snapshot(s.order.Len(), s.maxEntries)
}

// pressureEvict removes least-recently-used entries until the tier's total
// bytes drop to targetBytes or the tier is empty, returning the number
// evicted. Used by Manager.PressureEvict against L3 only.
func (s *lruStore) pressureEvict(targetBytes int64) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var evicted int
	for s.counters.bytes > targetBytes {
		back := s.order.Back()
		if back == nil {
			break
		}
		s.deleteElement(back)
		s.counters.evictions++
		evicted++
	}
	return evicted
}

func (s *lruStore) totalBytes() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.counters.bytes
}

// deleteElement unlinks an element from both the list and the map and
// adjusts byte accounting. Caller holds the lock.
func (s *lruStore) deleteElement(el *list.Element) {
	e := el.Value.(*Entry)
	s.order.Remove(el)
	delete(s.elements, e.Key)
	s.counters.bytes -= e.SizeBytes
}
