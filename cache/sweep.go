package cache

import (
	"context"
	"sync"
	"time"
)

// sweeper proactively removes expired L2/L3 entries on a fixed interval so
// that rarely-read keys do not linger until their next access. Each sweep
// step acquires a single tier's lock, so foreground operations are never
// blocked for longer than one tier pass. L1 is cleared explicitly at scope
// boundaries and L4's expired slots are skipped on read, so neither is
// swept.
type sweeper struct {
	ctx       context.Context
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
	once      sync.Once
}

func startSweeper(m *Manager, interval time.Duration) *sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	s := &sweeper{ctx: ctx, cancel: cancel}
	s.waitGroup.Add(1)
	go s.run(m, interval)
	return s
}

func (s *sweeper) run(m *Manager, interval time.Duration) {
	defer s.waitGroup.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			m.sweepOnce()
		}
	}
}

func (s *sweeper) stop() {
	s.once.Do(func() {
		s.cancel()
		s.waitGroup.Wait()
	})
}

// sweepOnce performs one full sweep pass over the TTL-bearing LRU tiers.
func (m *Manager) sweepOnce() {
	now := m.cfg.clock()
	for _, level := range []Level{L2, L3} {
		if removed := m.tiers[level].sweep(now); removed > 0 {
			m.cfg.log.Trace("swept %d expired entries from %s", removed, level)
		}
	}
}
