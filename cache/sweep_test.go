package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentuity/tiercache/logger"
)

func TestSweepOnceRemovesExpiredL2L3(t *testing.T) {
	clock := newFakeClock()
	m := New(WithClock(clock.Now))
	defer m.Close()
	require.NoError(t, m.Write("l2-stale", 1, L2, WithTTL(time.Second)))
	require.NoError(t, m.Write("l2-fresh", 2, L2, WithTTL(time.Hour)))
	require.NoError(t, m.Write("l3-stale", 3, L3, WithTTL(time.Second)))
	require.NoError(t, m.Write("l4-stale", 4, L4, WithTTL(time.Second)))

	clock.Advance(2 * time.Second)
	m.sweepOnce()

	l2, _ := m.Stats(L2)
	assert.Equal(t, 1, l2.Size)
	assert.Equal(t, int64(1), l2.Expirations)
	l3, _ := m.Stats(L3)
	assert.Zero(t, l3.Size)
	// The sweeper leaves L4 alone; its expired slots die on access or
	// overwrite.
	l4, _ := m.Stats(L4)
	assert.Equal(t, 1, l4.Size)
}

func TestBackgroundSweeper(t *testing.T) {
	m := New(WithSweepInterval(20 * time.Millisecond))
	defer m.Close()
	require.NoError(t, m.Write("stale", 1, L2, WithTTL(10*time.Millisecond)))

	assert.Eventually(t, func() bool {
		stats, err := m.Stats(L2)
		return err == nil && stats.Size == 0
	}, time.Second, 10*time.Millisecond)

	stats, err := m.Stats(L2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Expirations)
	// The entry was reaped without ever being read, so no miss was charged.
	assert.Zero(t, stats.Misses)
}

func TestSweeperLogsRemovals(t *testing.T) {
	// Whitebox: drive sweepOnce directly with a capture logger.
	clock := newFakeClock()
	log := logger.NewTestLogger()
	m := New(WithClock(clock.Now), WithLogger(log))
	defer m.Close()
	require.NoError(t, m.Write("stale", 1, L3, WithTTL(time.Second)))
	clock.Advance(2 * time.Second)

	m.sweepOnce()
	stats, err := m.Stats(L3)
	require.NoError(t, err)
	assert.Zero(t, stats.Size)

	logs := log.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "TRACE", logs[0].Severity)
}
