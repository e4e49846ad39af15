package memory

import (
	"context"
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"image-browser/internal/errors"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
)

var log = logging.Named("memory")

// Config holds memory monitor configuration
type Config struct {
	// LimitBytes is the soft limit. Zero uses GOMEMLIMIT; with neither set
	// the monitor never pauses.
	LimitBytes int64

	// CriticalWaterMark is the usage ratio at which decoding pauses.
	CriticalWaterMark float64

	// ResumeWaterMark is the usage ratio below which decoding resumes.
	ResumeWaterMark float64

	// CheckInterval is how often usage is sampled.
	CheckInterval time.Duration
}

// DefaultConfig returns sensible defaults for the monitor
func DefaultConfig() Config {
	return Config{
		CriticalWaterMark: 0.85,
		ResumeWaterMark:   0.7,
		CheckInterval:     2 * time.Second,
	}
}

// Monitor samples heap usage and pauses large decodes while usage is
// above the critical mark. A paused monitor resumes once usage falls below
// the resume mark.
type Monitor struct {
	config    Config
	limit     int64
	readAlloc func() uint64

	mu       sync.RWMutex
	current  uint64
	paused   bool
	resumed  chan struct{}
	stopOnce sync.Once
	stop     chan struct{}
}

// NewMonitor creates a monitor. It does not sample until Start.
func NewMonitor(config Config) *Monitor {
	limit := config.LimitBytes
	if limit == 0 {
		if goMemLimit := debug.SetMemoryLimit(-1); goMemLimit > 0 && goMemLimit < math.MaxInt64 {
			limit = goMemLimit
		}
	}
	if limit == 0 {
		log.Debug("no memory limit configured, decode backpressure disabled")
	} else {
		log.Info("decode backpressure at %.0f%% of %s", config.CriticalWaterMark*100, formatBytes(limit))
	}

	return &Monitor{
		config:    config,
		limit:     limit,
		readAlloc: heapAlloc,
		resumed:   make(chan struct{}),
		stop:      make(chan struct{}),
	}
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.Alloc
}

// Start begins sampling. It is a no-op without a limit.
func (m *Monitor) Start() {
	if m.limit == 0 {
		return
	}
	go m.loop()
}

// Stop ends sampling and releases every waiter.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-m.stop:
			return
		}
	}
}

func (m *Monitor) check() {
	alloc := m.readAlloc()
	usage := float64(alloc) / float64(m.limit)
	metrics.MemoryUsageRatio.Set(usage)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = alloc

	switch {
	case !m.paused && usage >= m.config.CriticalWaterMark:
		log.Warn("memory critical (%.1f%% of limit), pausing thumbnail decoding", usage*100)
		m.paused = true
		metrics.MemoryPaused.Set(1)
		metrics.MemoryPausesTotal.Inc()
		go runtime.GC()
	case m.paused && usage < m.config.ResumeWaterMark:
		log.Info("memory recovered (%.1f%% of limit), resuming thumbnail decoding", usage*100)
		m.paused = false
		metrics.MemoryPaused.Set(0)
		close(m.resumed)
		m.resumed = make(chan struct{})
	}
}

// Wait blocks while the monitor is paused. It returns a CANCELED error
// when ctx ends first, and nil once decoding may proceed or the monitor
// is stopped.
func (m *Monitor) Wait(ctx context.Context) error {
	m.mu.RLock()
	if !m.paused {
		m.mu.RUnlock()
		return nil
	}
	resumed := m.resumed
	m.mu.RUnlock()

	select {
	case <-resumed:
		return nil
	case <-m.stop:
		return nil
	case <-ctx.Done():
		return errors.Canceled(ctx.Err())
	}
}

// Paused reports whether decoding is currently paused.
func (m *Monitor) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

// Usage returns the last sampled usage as a fraction of the limit, or 0
// without a limit.
func (m *Monitor) Usage() float64 {
	if m.limit == 0 {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float64(m.current) / float64(m.limit)
}
