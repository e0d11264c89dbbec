package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentuity/tiercache/logger"
)

func TestPressureMonitorEvictsAboveThreshold(t *testing.T) {
	sampled := func() (float64, error) { return 95.0, nil }
	m := New(
		WithPressureThreshold(2048),
		WithMemorySampler(sampled),
	)
	defer m.Close()
	payload := make([]byte, 1024)
	for i := 0; i < 8; i++ {
		require.NoError(t, m.Write(fmt.Sprintf("k%d", i), payload, L3))
	}
	stats, _ := m.Stats(L3)
	require.Greater(t, stats.TotalBytes, int64(2048))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartPressureMonitor(ctx, 10*time.Millisecond, 90.0)

	assert.Eventually(t, func() bool {
		stats, err := m.Stats(L3)
		return err == nil && stats.TotalBytes <= 2048
	}, time.Second, 10*time.Millisecond)

	// L1 and L4 are untouched by design.
	l1, _ := m.Stats(L1)
	assert.Zero(t, l1.Evictions)
	l4, _ := m.Stats(L4)
	assert.Zero(t, l4.Evictions)
}

func TestPressureMonitorBelowThresholdDoesNothing(t *testing.T) {
	m := New(
		WithPressureThreshold(1),
		WithMemorySampler(func() (float64, error) { return 10.0, nil }),
	)
	defer m.Close()
	require.NoError(t, m.Write("k", make([]byte, 1024), L3))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartPressureMonitor(ctx, 5*time.Millisecond, 90.0)
	time.Sleep(50 * time.Millisecond)

	stats, err := m.Stats(L3)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
}

func TestPressureMonitorRequiresThreshold(t *testing.T) {
	m := New() // no threshold configured
	defer m.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Must be a no-op rather than evicting toward zero.
	m.StartPressureMonitor(ctx, time.Millisecond, 0)
	require.NoError(t, m.Write("k", "v", L3))
	time.Sleep(20 * time.Millisecond)
	stats, err := m.Stats(L3)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
}

func TestPressureSamplerErrorIsLogged(t *testing.T) {
	log := logger.NewTestLogger()
	m := New(
		WithPressureThreshold(1),
		WithMemorySampler(func() (float64, error) { return 0, errors.New("sensor offline") }),
		WithLogger(log),
	)
	defer m.Close()
	m.checkPressure(m.cfg.sampler, 90.0)

	logs := log.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "WARNING", logs[0].Severity)
}
