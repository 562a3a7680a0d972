package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Checker reports the health of a dependency.
type Checker interface {
	Health(ctx context.Context) error
}

// HealthProbe periodically checks a dependency and logs transitions between
// healthy and unhealthy.
type HealthProbe struct {
	name     string
	checker  Checker
	interval time.Duration
	logger   *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}

	mu      sync.Mutex
	healthy bool
}

// NewHealthProbe creates a probe that calls checker every interval.
//
// Precondition: checker and logger must be non-nil; interval > 0.
func NewHealthProbe(name string, checker Checker, interval time.Duration, logger *zap.Logger) *HealthProbe {
	return &HealthProbe{
		name:     name,
		checker:  checker,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		healthy:  true,
	}
}

// Start runs checks until Stop is called.
func (p *HealthProbe) Start() error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return nil
		case <-ticker.C:
			p.check()
		}
	}
}

// Stop ends the probe loop. It is safe to call more than once.
func (p *HealthProbe) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Healthy reports the result of the most recent check.
func (p *HealthProbe) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

func (p *HealthProbe) check() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()
	err := p.checker.Health(ctx)

	p.mu.Lock()
	was := p.healthy
	p.healthy = err == nil
	p.mu.Unlock()

	switch {
	case err != nil && was:
		p.logger.Error("dependency unhealthy", zap.String("dependency", p.name), zap.Error(err))
	case err == nil && !was:
		p.logger.Info("dependency recovered", zap.String("dependency", p.name))
	}
}
