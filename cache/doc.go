// Package cache provides a volatile, in-process, four-tier memory cache
// with cascading lookup. It exists to keep a processing pipeline from
// recomputing values it has already produced: a producer writes a computed
// value into a chosen tier, and a later read finds the first unexpired copy
// from the hottest tier down.
//
// # Tiers
//
// Four tiers sit behind one [Manager], ordered hottest/smallest to
// coldest/largest, each with its own eviction policy and its own lock:
//
//   - [L1] working — small fixed capacity (default 9), pure LRU. Protects
//     the current cycle's working set; flushed explicitly at cycle
//     boundaries with [Manager.FlushLevel] and exempt from pressure
//     eviction.
//
//   - [L2] session — LRU bounded by entries and/or estimated bytes, with
//     TTL expiry detected lazily on access and optionally by a background
//     sweeper.
//
//   - [L3] result — like L2 but larger, and the only tier subject to
//     [Manager.PressureEvict].
//
//   - [L4] decision — a fixed-capacity ring buffer answering "has this
//     decision been seen recently". Writes overwrite the oldest slot in
//     insertion order; reads scan newest-first and never reorder the ring;
//     only TTL removes entries before they are overwritten.
//
// # Reads, writes and promotion
//
// [Manager.Read] cascades L1→L2→L3→L4 and returns the first unexpired hit,
// incrementing its hit count. An expired entry found along the way is
// removed from its tier (counted as a miss there) and the cascade
// continues. A miss is a normal outcome, not an error: a key that was never
// written and a key that expired are indistinguishable, and callers treat
// both as "go recompute".
//
// Hits in L2–L4 are promoted into L1 according to the configured
// [PromotionPolicy]. By default every lower-tier hit is promoted and the
// promoted copy keeps its original write time and TTL, so promotion never
// extends an entry's life. The source tier retains its copy; a key may
// briefly exist in two tiers with different metadata, which is acceptable —
// a stale hit is just a slightly stale cache value, never corrupted data.
//
// [Manager.Write] stamps the entry with the injected clock, estimates its
// serialized size, and inserts it into the target tier, evicting per that
// tier's policy on overflow. Only malformed arguments (empty key, unknown
// level, non-positive TTL) produce errors, marked with the sentinels in
// errors.go.
//
// # Concurrency
//
// The Manager is a passive, synchronous structure shared by all goroutines
// in the process. Each tier owns an independent mutex and no operation ever
// holds two tier locks at once, so lock-ordering deadlocks are impossible
// by construction and a long L3 pressure eviction never blocks an L1 read.
// Within a tier, operations are linearized by the tier lock.
//
// # Expiry
//
// Expiry is a pure predicate over the entry's write stamp and TTL,
// evaluated against Go's monotonic clock so wall-clock adjustments cannot
// expire or revive entries. It is checked lazily on access; configuring
// [WithSweepInterval] additionally starts a background sweeper that reaps
// expired L2/L3 entries, taking one tier lock per step.
//
// # Typed helpers
//
// The interface stores values as [any] because Go does not allow generic
// methods on interfaces. Type safety is provided by the package-level
// generic functions [Get] and [Exec]. [Exec] is a cache-aside helper that
// collapses concurrent misses for the same key into a single computation:
//
//	found, plan, err := cache.Exec(ctx, cache.ExecConfig{Key: key, Level: cache.L3}, m,
//	    func(ctx context.Context) (Plan, bool, error) {
//	        return computePlan(ctx, input)
//	    },
//	)
//
// # Memory pressure
//
// [Manager.PressureEvict] evicts least-recently-used L3 entries until the
// tier's estimated bytes fall to the target. L1 and L4 are exempt by
// design. [Manager.StartPressureMonitor] automates this with a
// gopsutil-backed host memory sampler.
//
// The cache holds no durable state: every Manager starts empty and nothing
// survives process restart.
package cache
