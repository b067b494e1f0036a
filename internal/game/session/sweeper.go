package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically evicts idle sessions from a Manager. It runs as a
// lifecycle service: Start blocks until Stop.
type Sweeper struct {
	manager  *Manager
	idle     time.Duration
	interval time.Duration
	logger   *zap.Logger
	quit     chan struct{}
	stopOnce sync.Once
}

// NewSweeper creates a Sweeper that every interval removes sessions unused
// for longer than idle.
//
// Precondition: manager and logger must be non-nil; idle and interval > 0.
func NewSweeper(manager *Manager, idle, interval time.Duration, logger *zap.Logger) *Sweeper {
	if manager == nil || logger == nil {
		panic("session: NewSweeper precondition violated: manager and logger must be non-nil")
	}
	if idle <= 0 || interval <= 0 {
		panic("session: NewSweeper precondition violated: idle and interval must be > 0")
	}
	return &Sweeper{
		manager:  manager,
		idle:     idle,
		interval: interval,
		logger:   logger,
		quit:     make(chan struct{}),
	}
}

// Start sweeps on every tick until Stop is called.
func (s *Sweeper) Start() error {
	s.logger.Info("session sweeper started",
		zap.Duration("idle", s.idle),
		zap.Duration("interval", s.interval),
	)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return nil
		case now := <-ticker.C:
			s.manager.Sweep(now, s.idle)
		}
	}
}

// Stop makes Start return. Safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}
