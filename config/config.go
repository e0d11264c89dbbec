// Package config loads cache settings from a YAML file with environment
// variable overrides and converts them into cache options. Byte sizes use
// Kubernetes resource quantity syntax ("64Mi", "1Gi") and durations accept
// extended forms like "90s" or "1d12h".
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/agentuity/tiercache/cache"
)

// TierSettings bounds one of the LRU tiers (session/L2 or result/L3).
type TierSettings struct {
	MaxEntries int    `yaml:"max_entries,omitempty"`
	MaxBytes   string `yaml:"max_bytes,omitempty"`
	DefaultTTL string `yaml:"default_ttl,omitempty"`
}

// Settings is the full configuration surface of the cache.
type Settings struct {
	// L1Capacity is the fixed size of the working cache.
	L1Capacity int `yaml:"l1_capacity,omitempty"`
	// WorkingTTL is an optional TTL for L1 entries; L1 is normally bounded
	// by LRU plus explicit flushes alone.
	WorkingTTL string `yaml:"working_ttl,omitempty"`
	// L4Capacity is the fixed slot count of the decision ring.
	L4Capacity int `yaml:"l4_capacity,omitempty"`
	// DecisionTTL is the TTL applied to decision-ring writes.
	DecisionTTL string `yaml:"decision_ttl,omitempty"`

	Session TierSettings `yaml:"session,omitempty"`
	Result  TierSettings `yaml:"result,omitempty"`

	// PressureThreshold is the L3 byte ceiling targeted by pressure
	// eviction, e.g. "128Mi".
	PressureThreshold string `yaml:"pressure_threshold,omitempty"`
	// SweepInterval enables the background expiry sweeper when set.
	SweepInterval string `yaml:"sweep_interval,omitempty"`

	// Promotion is one of "always", "never" or "after-hits".
	Promotion string `yaml:"promotion,omitempty"`
	// PromotionThreshold is the hit count used by "after-hits".
	PromotionThreshold int `yaml:"promotion_threshold,omitempty"`
	// PromotionTTLReset restarts a promoted entry's TTL in L1.
	PromotionTTLReset bool `yaml:"promotion_ttl_reset,omitempty"`
}

// Load reads a YAML settings file and applies environment overrides. A
// missing file is not an error: defaults plus the environment apply.
func Load(filename string) (*Settings, error) {
	var s Settings
	if filename != "" {
		buf, err := os.ReadFile(filename)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: reading %s: %w", filename, err)
			}
		} else if err := yaml.Unmarshal(buf, &s); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", filename, err)
		}
	}
	s.applyEnv()
	return &s, nil
}

// applyEnv overlays TIERCACHE_* environment variables onto the settings.
func (s *Settings) applyEnv() {
	if v := os.Getenv("TIERCACHE_L1_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.L1Capacity = n
		}
	}
	if v := os.Getenv("TIERCACHE_L4_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.L4Capacity = n
		}
	}
	if v := os.Getenv("TIERCACHE_PRESSURE_THRESHOLD"); v != "" {
		s.PressureThreshold = v
	}
	if v := os.Getenv("TIERCACHE_SWEEP_INTERVAL"); v != "" {
		s.SweepInterval = v
	}
	if v := os.Getenv("TIERCACHE_PROMOTION"); v != "" {
		s.Promotion = v
	}
}

// Options validates the settings and converts them into cache options
// suitable for cache.New.
func (s *Settings) Options() ([]cache.Option, error) {
	var opts []cache.Option
	if s.L1Capacity > 0 {
		opts = append(opts, cache.WithL1Capacity(s.L1Capacity))
	}
	if s.L4Capacity > 0 {
		opts = append(opts, cache.WithRingCapacity(s.L4Capacity))
	}
	if s.WorkingTTL != "" {
		d, err := parseDuration("working_ttl", s.WorkingTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithDefaultTTL(cache.L1, d))
	}
	if s.DecisionTTL != "" {
		d, err := parseDuration("decision_ttl", s.DecisionTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithDefaultTTL(cache.L4, d))
	}
	tierOpts, err := s.Session.options(cache.L2, "session")
	if err != nil {
		return nil, err
	}
	opts = append(opts, tierOpts...)
	tierOpts, err = s.Result.options(cache.L3, "result")
	if err != nil {
		return nil, err
	}
	opts = append(opts, tierOpts...)
	if s.PressureThreshold != "" {
		n, err := parseBytes("pressure_threshold", s.PressureThreshold)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithPressureThreshold(n))
	}
	if s.SweepInterval != "" {
		d, err := parseDuration("sweep_interval", s.SweepInterval)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithSweepInterval(d))
	}
	switch s.Promotion {
	case "", "always":
		// PromoteAlways is the cache default.
	case "never":
		opts = append(opts, cache.WithPromotionPolicy(cache.PromoteNever))
	case "after-hits":
		opts = append(opts, cache.WithPromotionPolicy(cache.PromoteAfterHits))
		if s.PromotionThreshold > 0 {
			opts = append(opts, cache.WithPromotionThreshold(s.PromotionThreshold))
		}
	default:
		return nil, fmt.Errorf("config: unknown promotion policy %q", s.Promotion)
	}
	if s.PromotionTTLReset {
		opts = append(opts, cache.WithPromotionTTLReset())
	}
	return opts, nil
}

func (t *TierSettings) options(level cache.Level, name string) ([]cache.Option, error) {
	var opts []cache.Option
	if t.MaxEntries > 0 {
		opts = append(opts, cache.WithMaxEntries(level, t.MaxEntries))
	}
	if t.MaxBytes != "" {
		n, err := parseBytes(name+".max_bytes", t.MaxBytes)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithMaxBytes(level, n))
	}
	if t.DefaultTTL != "" {
		d, err := parseDuration(name+".default_ttl", t.DefaultTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cache.WithDefaultTTL(level, d))
	}
	return opts, nil
}

func parseBytes(field, val string) (int64, error) {
	q, err := resource.ParseQuantity(val)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", field, val, err)
	}
	n, ok := q.AsInt64()
	if !ok || n < 0 {
		return 0, fmt.Errorf("config: %s must be a non-negative byte quantity, got %q", field, val)
	}
	return n, nil
}

func parseDuration(field, val string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s duration %q: %w", field, val, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %q", field, val)
	}
	return d, nil
}
