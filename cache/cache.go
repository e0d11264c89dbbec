package cache

import (
	"time"

	"github.com/agentuity/tiercache/logger"
)

// Level identifies one of the four cache tiers, ordered from the hottest and
// smallest (L1) to the coldest and largest (L4).
type Level int

const (
	// L1 is the working cache: a small fixed-capacity pure-LRU tier holding
	// the current cycle's hot values. Typically flushed at cycle boundaries.
	L1 Level = iota
	// L2 is the session cache: a bounded LRU tier with TTL expiry.
	L2
	// L3 is the result cache: a bounded LRU tier with TTL expiry and the
	// only tier subject to pressure eviction.
	L3
	// L4 is the decision log: a fixed-capacity ring buffer where the oldest
	// slot is overwritten on overflow. Reads never reorder it.
	L4

	numLevels = 4
)

// Levels returns all tiers in cascade order, hottest first.
func Levels() []Level {
	return []Level{L1, L2, L3, L4}
}

func (l Level) valid() bool {
	return l >= L1 && l <= L4
}

func (l Level) String() string {
	switch l {
	case L1:
		return "l1"
	case L2:
		return "l2"
	case L3:
		return "l3"
	case L4:
		return "l4"
	}
	return "unknown"
}

// PromotionPolicy controls whether a hit in a lower tier is copied into L1.
type PromotionPolicy int

const (
	// PromoteAlways copies every lower-tier hit into L1. This is the default.
	PromoteAlways PromotionPolicy = iota
	// PromoteNever disables promotion entirely.
	PromoteNever
	// PromoteAfterHits promotes an entry only once its hit count reaches the
	// threshold configured with WithPromotionThreshold.
	PromoteAfterHits
)

// Default capacities and TTLs. These mirror the sizes the processing
// pipeline was tuned for; all of them can be overridden per manager.
const (
	DefaultL1Capacity   = 9
	DefaultRingCapacity = 64

	DefaultL2MaxEntries = 1024
	DefaultL3MaxEntries = 4096

	DefaultL2TTL = 15 * time.Minute
	DefaultL3TTL = time.Hour
	DefaultL4TTL = 5 * time.Minute
)

// levelConfig holds the resolved settings for one tier.
type levelConfig struct {
	maxEntries int
	maxBytes   int64
	defaultTTL time.Duration
}

// config holds the resolved configuration for a Manager.
type config struct {
	levels             [numLevels]levelConfig
	promotion          PromotionPolicy
	promotionThreshold int
	promotionResetsTTL bool
	sweepInterval      time.Duration
	pressureThreshold  int64
	clock              func() time.Time
	log                logger.Logger
	sampler            MemorySampler
}

// Option configures a Manager.
type Option func(*config)

func defaultConfig() config {
	c := config{
		clock:              time.Now,
		log:                logger.NewDiscard(),
		promotion:          PromoteAlways,
		promotionThreshold: 3,
	}
	c.levels[L1] = levelConfig{maxEntries: DefaultL1Capacity}
	c.levels[L2] = levelConfig{maxEntries: DefaultL2MaxEntries, defaultTTL: DefaultL2TTL}
	c.levels[L3] = levelConfig{maxEntries: DefaultL3MaxEntries, defaultTTL: DefaultL3TTL}
	c.levels[L4] = levelConfig{maxEntries: DefaultRingCapacity, defaultTTL: DefaultL4TTL}
	return c
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithL1Capacity sets the fixed capacity of the L1 working cache.
// Defaults to DefaultL1Capacity.
func WithL1Capacity(n int) Option {
	return func(c *config) { c.levels[L1].maxEntries = n }
}

// WithRingCapacity sets the fixed slot count of the L4 decision ring.
// Defaults to DefaultRingCapacity.
func WithRingCapacity(n int) Option {
	return func(c *config) { c.levels[L4].maxEntries = n }
}

// WithMaxEntries bounds a tier by entry count. Zero means unbounded.
// Has no effect on L1 and L4, whose capacities are fixed at construction
// (use WithL1Capacity and WithRingCapacity for those).
func WithMaxEntries(level Level, n int) Option {
	return func(c *config) {
		if level == L2 || level == L3 {
			c.levels[level].maxEntries = n
		}
	}
}

// WithMaxBytes bounds a tier by estimated total bytes. Zero means unbounded.
// Only meaningful for L2 and L3.
func WithMaxBytes(level Level, n int64) Option {
	return func(c *config) {
		if level == L2 || level == L3 {
			c.levels[level].maxBytes = n
		}
	}
}

// WithDefaultTTL sets the TTL applied to writes into level that do not carry
// an explicit TTL. A zero duration means entries in that tier never expire.
func WithDefaultTTL(level Level, d time.Duration) Option {
	return func(c *config) {
		if level.valid() {
			c.levels[level].defaultTTL = d
		}
	}
}

// WithPromotionPolicy sets how lower-tier hits are promoted into L1.
// Defaults to PromoteAlways.
func WithPromotionPolicy(p PromotionPolicy) Option {
	return func(c *config) { c.promotion = p }
}

// WithPromotionThreshold sets the hit count at which PromoteAfterHits
// promotes an entry. Defaults to 3.
func WithPromotionThreshold(n int) Option {
	return func(c *config) { c.promotionThreshold = n }
}

// WithPromotionTTLReset makes promotion re-stamp the promoted copy's write
// time, restarting its TTL in L1. By default the original write time and TTL
// are preserved, so promotion never extends an entry's life.
func WithPromotionTTLReset() Option {
	return func(c *config) { c.promotionResetsTTL = true }
}

// WithSweepInterval enables the background sweeper, which proactively
// removes expired L2/L3 entries at the given interval. Disabled by default;
// expiry is otherwise detected lazily on access.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) { c.sweepInterval = d }
}

// WithPressureThreshold sets the L3 byte ceiling used by the pressure
// monitor (see Manager.StartPressureMonitor). Zero disables it.
func WithPressureThreshold(n int64) Option {
	return func(c *config) { c.pressureThreshold = n }
}

// WithClock injects the time source used for write stamps and expiry
// checks. Defaults to time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.clock = now }
}

// WithLogger sets the logger used for eviction, sweep and pressure events.
// Defaults to a discard logger.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithMemorySampler injects the host-memory sampler used by the pressure
// monitor. Defaults to a gopsutil-backed sampler. Intended for tests.
func WithMemorySampler(s MemorySampler) Option {
	return func(c *config) { c.sampler = s }
}
