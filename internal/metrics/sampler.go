package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"procwatch/internal/config"
)

const (
	// cpuWindow is the sub-interval over which the global CPU reading is
	// measured, short enough to keep a cycle responsive but long enough for
	// a stable figure.
	cpuWindow = 100 * time.Millisecond
	// errorRetryDelay is how long the loop backs off after a whole-cycle
	// failure before trying again.
	errorRetryDelay = time.Second
)

// Sampler runs the background collection loop: one snapshot per cycle,
// published to the queue, sleeping for the configured interval in between.
// Transient errors never stop the loop; only Stop does.
type Sampler struct {
	source Source
	queue  *SnapshotQueue
	rate   *config.RefreshRate
	logger *zap.Logger
	cores  int

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewSampler builds a sampler. The core count is queried once here and cached
// for the lifetime of the monitor; it is what normalizes per-process CPU
// readings onto the global 0-100 scale.
func NewSampler(ctx context.Context, source Source, queue *SnapshotQueue, rate *config.RefreshRate, logger *zap.Logger) (*Sampler, error) {
	cores, err := source.CPUCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("query core count: %w", err)
	}
	if cores < 1 {
		cores = 1
	}
	return &Sampler{
		source: source,
		queue:  queue,
		rate:   rate,
		logger: logger,
		cores:  cores,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Cores returns the cached logical core count.
func (s *Sampler) Cores() int {
	return s.cores
}

// Start launches the sampling loop on its own goroutine. Safe to call once.
func (s *Sampler) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Stop signals the loop to exit and waits for it to finish, bounded by
// timeout so a sampler mid-sleep can never hang shutdown.
func (s *Sampler) Stop(timeout time.Duration) error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	select {
	case <-s.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("sampler did not stop within %s", timeout)
	}
}

func (s *Sampler) run() {
	defer close(s.done)
	ctx := context.Background()
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		if err := s.cycle(ctx); err != nil {
			s.logger.Warn("sampling cycle failed", zap.Error(err))
			if !s.sleep(errorRetryDelay) {
				return
			}
			continue
		}
		// Interval is re-read every cycle so operator changes apply on the
		// next cycle.
		interval := time.Duration(s.rate.Seconds() * float64(time.Second))
		if !s.sleep(interval) {
			return
		}
	}
}

func (s *Sampler) cycle(ctx context.Context) error {
	cpuPercent, err := s.source.CPUPercent(ctx, cpuWindow)
	if err != nil {
		return fmt.Errorf("read cpu: %w", err)
	}
	memory, err := s.source.Memory(ctx)
	if err != nil {
		return fmt.Errorf("read memory: %w", err)
	}
	raw, err := s.source.Processes(ctx)
	if err != nil {
		return fmt.Errorf("enumerate processes: %w", err)
	}
	system := SystemSample{CPUPercent: cpuPercent, Memory: memory}
	snapshot, skipped := BuildSnapshot(system, raw, s.cores, time.Now())
	if skipped > 0 {
		s.logger.Debug("dropped invalid process records", zap.Int("count", skipped))
	}
	s.queue.Publish(snapshot)
	return nil
}

// sleep waits for d or until Stop is requested; returns false on stop.
func (s *Sampler) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-s.stop:
		return false
	}
}
