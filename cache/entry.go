package cache

import "time"

// Entry is a single cached value plus its metadata. Entries are created by
// Manager.Write and owned by the tier store that holds them; callers receive
// a copy and must not rely on mutating it.
type Entry struct {
	// Key uniquely identifies the entry within its tier.
	Key string
	// Value is the cached payload. The cache is agnostic to its content.
	Value any
	// Level is the tier the entry was read from or written to.
	Level Level
	// WrittenAt is the write timestamp. Comparisons against it use Go's
	// monotonic clock reading, so wall-clock adjustments cannot expire or
	// revive entries.
	WrittenAt time.Time
	// TTL is the entry's maximum age. Zero means the entry never expires.
	TTL time.Duration
	// HitCount is the number of successful reads since the entry was written.
	HitCount int
	// SizeBytes is the estimated serialized size of Value, used only for
	// byte-bounded eviction and pressure accounting.
	SizeBytes int64
}

// Expired reports whether the entry's age at now exceeds its TTL.
func (e *Entry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return false
	}
	return now.Sub(e.WrittenAt) > e.TTL
}
