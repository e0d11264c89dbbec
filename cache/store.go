package cache

import "time"

// tierStore is the contract between the Manager and one tier's storage.
// Every method is self-synchronizing: implementations guard their state with
// their own lock, so the Manager never holds two tier locks at once.
type tierStore interface {
	// get returns a copy of the live entry for key, bumping its hit count.
	// An expired entry found under key is removed and counted as a miss.
	get(key string, now time.Time) (Entry, bool)
	// put inserts or replaces the entry, applying the tier's eviction
	// policy if the insert overflows capacity.
	put(e *Entry)
	// remove deletes key if present and reports whether it was.
	remove(key string) bool
	// removePrefix deletes every key starting with prefix, returning the
	// number removed.
	removePrefix(prefix string) int
	// flush removes all entries. Counters other than byte totals survive.
	flush()
	// sweep removes expired entries, returning the number removed.
	sweep(now time.Time) int
	// stats returns a snapshot of the tier's counters.
	stats() Stats
}
