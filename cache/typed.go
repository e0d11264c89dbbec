package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Get retrieves a typed value from the cache. It performs a direct type
// assertion on the cached value, falling back to msgpack deserialization
// when the value was stored as raw bytes.
func Get[T any](m *Manager, key string) (bool, T, error) {
	var zero T
	e, found, err := m.Read(key)
	if !found || err != nil {
		return false, zero, err
	}
	if typed, ok := e.Value.(T); ok {
		return true, typed, nil
	}
	if data, ok := e.Value.([]byte); ok {
		var result T
		if err := msgpack.Unmarshal(data, &result); err != nil {
			return false, zero, fmt.Errorf("cache: failed to unmarshal value: %w", err)
		}
		return true, result, nil
	}
	return false, zero, fmt.Errorf("cache: cannot convert value of type %T to %T", e.Value, zero)
}

// ExecConfig configures the Exec helper.
type ExecConfig struct {
	// Key is the cache key. Required.
	Key string
	// Level is the tier a computed value is written into.
	Level Level
	// TTL overrides the tier's default TTL when positive.
	TTL time.Duration
}

// Invoker produces a value of type T on a cache miss. The bool return
// reports whether a value was produced; return false to signal "nothing to
// cache" without storing a zero value.
type Invoker[T any] func(ctx context.Context) (T, bool, error)

// Exec is a cache-aside helper. It reads config.Key through the cascade
// first; on a hit the cached value is returned. On a miss it calls invoke,
// deduplicating concurrent misses for the same key so the computation runs
// once, then writes the result into config.Level and returns it. When
// invoke reports found=false nothing is cached and found=false is returned.
// A failed Write after a successful invoke is swallowed — the caller got
// their value, and failing to cache it is a degradation, not a failure.
func Exec[T any](ctx context.Context, config ExecConfig, m *Manager, invoke Invoker[T]) (bool, T, error) {
	var zero T
	found, val, err := Get[T](m, config.Key)
	if err != nil {
		return false, zero, err
	}
	if found {
		return true, val, nil
	}

	// Cache miss — collapse concurrent invocations of the same key.
	res, err, _ := m.flight.Do(config.Key, func() (any, error) {
		result, ok, err := invoke(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			var opts []WriteOption
			if config.TTL > 0 {
				opts = append(opts, WithTTL(config.TTL))
			}
			_ = m.Write(config.Key, result, config.Level, opts...)
		}
		return execResult[T]{val: result, ok: ok}, nil
	})
	if err != nil {
		return false, zero, err
	}
	out, ok := res.(execResult[T])
	if !ok {
		return false, zero, fmt.Errorf("cache: concurrent Exec calls for key %q disagree on type", config.Key)
	}
	if !out.ok {
		return false, zero, nil
	}
	return true, out.val, nil
}

// execResult carries one collapsed invocation's outcome to every waiter.
type execResult[T any] struct {
	val T
	ok  bool
}
