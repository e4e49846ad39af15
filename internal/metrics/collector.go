package metrics

import (
	"sync"
	"time"

	"image-browser/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the point-in-time state of long-lived components.
type Stats struct {
	Watching           bool
	WatchedDirectories int
	Subscribers        int
}

// Collector periodically collects and updates gauge metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection. Safe to call more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	if stats.Watching {
		WatchActive.Set(1)
	} else {
		WatchActive.Set(0)
	}
	WatchedDirectories.Set(float64(stats.WatchedDirectories))
	HubSubscribers.Set(float64(stats.Subscribers))

	logging.Debug("Metrics collected: watching=%v, directories=%d, subscribers=%d",
		stats.Watching, stats.WatchedDirectories, stats.Subscribers)
}
