package cache

import (
	"time"

	"golang.org/x/sync/singleflight"
)

// Manager orchestrates the four tier stores behind one cascading interface.
// It is the sole public entry point of the cache: construct one per process
// with New and inject it wherever reads or writes are needed. A fresh
// Manager starts empty — nothing is persisted across restarts.
//
// All methods are safe for concurrent use. Each tier owns its own lock and
// the Manager never holds two tier locks at once, so a slow operation on one
// tier (say, pressure-evicting L3) cannot block reads served by another.
type Manager struct {
	cfg    config
	tiers  [numLevels]tierStore
	l3     *lruStore // concrete handle for pressure eviction
	flight singleflight.Group
	sweep  *sweeper
}

// New constructs a Manager with all four tiers empty.
func New(opts ...Option) *Manager {
	cfg := applyOptions(opts)
	l1 := newLRUStore(cfg.levels[L1])
	l2 := newLRUStore(cfg.levels[L2])
	l3 := newLRUStore(cfg.levels[L3])
	l4 := newRingStore(cfg.levels[L4])
	m := &Manager{
		cfg:   cfg,
		tiers: [numLevels]tierStore{l1, l2, l3, l4},
		l3:    l3,
	}
	if cfg.sweepInterval > 0 {
		m.sweep = startSweeper(m, cfg.sweepInterval)
	}
	return m
}

// Read looks key up tier by tier, hottest to coldest, and returns a copy of
// the first unexpired entry found. An expired entry encountered on the way
// down is removed from its tier and the cascade continues. The bool reports
// whether anything was found; a miss is not an error.
func (m *Manager) Read(key string) (*Entry, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	now := m.cfg.clock()
	for _, level := range Levels() {
		e, ok := m.tiers[level].get(key, now)
		if !ok {
			continue
		}
		if level > L1 && m.shouldPromote(&e) {
			m.promote(&e, now)
		}
		return &e, true, nil
	}
	return nil, false, nil
}

// shouldPromote applies the configured promotion policy to a lower-tier hit.
func (m *Manager) shouldPromote(e *Entry) bool {
	switch m.cfg.promotion {
	case PromoteAlways:
		return true
	case PromoteAfterHits:
		return e.HitCount >= m.cfg.promotionThreshold
	}
	return false
}

// promote copies a lower-tier hit into L1. The source tier keeps its copy;
// duplicates across tiers are harmless and reclaimed by normal eviction. By
// default the original write time and TTL are preserved so promotion never
// extends an entry's life; WithPromotionTTLReset re-stamps instead.
func (m *Manager) promote(e *Entry, now time.Time) {
	copied := *e
	copied.Level = L1
	if m.cfg.promotionResetsTTL {
		copied.WrittenAt = now
	}
	m.tiers[L1].put(&copied)
	m.cfg.log.Trace("promoted %s to l1 from %s", copied.Key, e.Level)
}

// WriteOption adjusts a single Write call.
type WriteOption func(*writeOptions)

type writeOptions struct {
	ttl    time.Duration
	ttlSet bool
}

// WithTTL overrides the destination tier's default TTL for this write.
// Must be positive; a non-positive TTL fails validation.
func WithTTL(d time.Duration) WriteOption {
	return func(o *writeOptions) {
		o.ttl = d
		o.ttlSet = true
	}
}

// Write stamps value with the current time and inserts it into level,
// triggering that tier's eviction policy if the insert overflows capacity.
// It always succeeds unless the arguments fail validation.
func (m *Manager) Write(key string, value any, level Level, opts ...WriteOption) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := validateLevel(level); err != nil {
		return err
	}
	var wo writeOptions
	for _, opt := range opts {
		opt(&wo)
	}
	ttl := m.cfg.levels[level].defaultTTL
	if wo.ttlSet {
		if err := validateTTL(wo.ttl); err != nil {
			return err
		}
		ttl = wo.ttl
	}
	e := &Entry{
		Key:       key,
		Value:     value,
		Level:     level,
		WrittenAt: m.cfg.clock(),
		TTL:       ttl,
		SizeBytes: estimateSize(value),
	}
	m.tiers[level].put(e)
	return nil
}

// Invalidate removes key from the given tiers, or from all four when none
// are specified. Removing an absent key is a no-op.
func (m *Manager) Invalidate(key string, levels ...Level) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(levels) == 0 {
		levels = Levels()
	}
	for _, level := range levels {
		if err := validateLevel(level); err != nil {
			return err
		}
	}
	for _, level := range levels {
		m.tiers[level].remove(key)
	}
	return nil
}

// InvalidateByPrefix removes every key starting with prefix from all tiers
// and returns the number of entries removed. An empty prefix matches every
// key.
func (m *Manager) InvalidateByPrefix(prefix string) int {
	var removed int
	for _, level := range Levels() {
		removed += m.tiers[level].removePrefix(prefix)
	}
	return removed
}

// Stats returns a snapshot of one tier's counters.
func (m *Manager) Stats(level Level) (Stats, error) {
	if err := validateLevel(level); err != nil {
		return Stats{}, err
	}
	return m.tiers[level].stats(), nil
}

// AllStats returns a snapshot of every tier's counters. The per-tier
// snapshots are each internally consistent but are not taken atomically
// with respect to one another.
func (m *Manager) AllStats() map[Level]Stats {
	stats := make(map[Level]Stats, numLevels)
	for _, level := range Levels() {
		stats[level] = m.tiers[level].stats()
	}
	return stats
}

// PressureEvict evicts least-recently-used L3 entries until L3's estimated
// total bytes drop to targetBytes or L3 is empty, returning the number
// evicted. Only L3 participates: L1 protects the current cycle's working
// set and L4 is a fixed-size decision log whose value is its recency
// window, not its size.
func (m *Manager) PressureEvict(targetBytes int64) int {
	evicted := m.l3.pressureEvict(targetBytes)
	if evicted > 0 {
		m.cfg.log.Debug("pressure evicted %d l3 entries to %d bytes", evicted, targetBytes)
	}
	return evicted
}

// FlushLevel clears one tier entirely. Used at explicit scope boundaries,
// e.g. clearing L1 at the end of a processing cycle.
func (m *Manager) FlushLevel(level Level) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	m.tiers[level].flush()
	m.cfg.log.Trace("flushed %s", level)
	return nil
}

// Close stops the background sweeper, if one was configured. The cache
// itself remains usable; Close exists for orderly shutdown and is
// idempotent.
func (m *Manager) Close() error {
	if m.sweep != nil {
		m.sweep.stop()
	}
	return nil
}
