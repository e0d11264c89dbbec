package cache

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Validation sentinels. These are the only errors the cache produces: a
// malformed call is a programmer error rejected at the API boundary. Misses,
// expiry and eviction are normal outcomes carried in return values, never
// errors. Match with errors.Is.
var (
	ErrEmptyKey     = errors.New("cache: key must not be empty")
	ErrUnknownLevel = errors.New("cache: unknown cache level")
	ErrInvalidTTL   = errors.New("cache: ttl must be positive")
)

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

func validateLevel(level Level) error {
	if !level.valid() {
		return errors.Newf("%w %d", ErrUnknownLevel, int(level))
	}
	return nil
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errors.Newf("%w, got %s", ErrInvalidTTL, ttl)
	}
	return nil
}
