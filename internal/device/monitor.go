package device

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Monitor rescans the buses on an interval so hotplugged printers show
// up without a manual detect call.
type Monitor struct {
	manager  *Manager
	logger   *zap.Logger
	interval time.Duration
	cancel   context.CancelFunc
}

// NewMonitor creates a monitor. Interval 0 selects 10 seconds.
func NewMonitor(manager *Manager, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval == 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		manager:  manager,
		logger:   logger,
		interval: interval,
	}
}

// Start begins scanning in the background until Stop is called.
func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.manager.Detect(); err != nil {
					m.logger.Warn("periodic rescan failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the background scan.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}
