package cache

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemorySampler reports the host's used-memory percentage (0–100).
type MemorySampler func() (float64, error)

// hostMemorySampler is the default sampler, backed by gopsutil.
func hostMemorySampler() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// StartPressureMonitor launches a goroutine that samples host memory every
// interval and, whenever usage meets or exceeds usedPercent, pressure-evicts
// L3 down to the byte ceiling configured with WithPressureThreshold. The
// monitor stops when ctx is cancelled. It requires a configured threshold;
// with none set it returns without starting.
func (m *Manager) StartPressureMonitor(ctx context.Context, interval time.Duration, usedPercent float64) {
	if m.cfg.pressureThreshold <= 0 {
		return
	}
	sampler := m.cfg.sampler
	if sampler == nil {
		sampler = hostMemorySampler
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.checkPressure(sampler, usedPercent)
			}
		}
	}()
}

func (m *Manager) checkPressure(sampler MemorySampler, usedPercent float64) {
	used, err := sampler()
	if err != nil {
		m.cfg.log.Warn("memory sample failed: %s", err)
		return
	}
	if used < usedPercent {
		return
	}
	if evicted := m.PressureEvict(m.cfg.pressureThreshold); evicted > 0 {
		m.cfg.log.Info("host memory at %.1f%%, evicted %d l3 entries", used, evicted)
	}
}
