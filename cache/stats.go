package cache

// Stats is a point-in-time snapshot of one tier's counters.
type Stats struct {
	// Size is the current number of live entries.
	Size int
	// MaxSize is the tier's configured entry bound; zero means unbounded.
	MaxSize int
	// Hits counts successful reads.
	Hits int64
	// Misses counts reads that found nothing usable, including reads that
	// found only an expired entry.
	Misses int64
	// Evictions counts capacity-driven removals (LRU overflow, ring
	// overwrite, pressure eviction).
	Evictions int64
	// Expirations counts entries removed because their TTL elapsed, whether
	// discovered lazily on access or by the background sweeper.
	Expirations int64
	// TotalBytes is the estimated serialized size of all live entries.
	TotalBytes int64
}

// HitRate returns Hits / (Hits + Misses), or 0 when there were no accesses.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters holds a store's mutable statistics. Guarded by the store's lock.
type counters struct {
	hits        int64
	misses      int64
	evictions   int64
	expirations int64
	bytes       int64
}

func (c *counters) snapshot(size, maxSize int) Stats {
	return Stats{
		Size:        size,
		MaxSize:     maxSize,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		TotalBytes:  c.bytes,
	}
}
