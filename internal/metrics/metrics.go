package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_browser_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Command metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_commands_total",
			Help: "Total number of commands by operation and result code",
		},
		[]string{"operation", "status"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_browser_command_duration_seconds",
			Help:    "Command duration in seconds, including time queued for a worker",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

// Worker pool metrics
var (
	WorkerTasksInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_worker_tasks_in_flight",
			Help: "Number of blocking tasks currently running on workers",
		},
	)

	WorkerPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_worker_panics_total",
			Help: "Total number of tasks that panicked on a worker",
		},
	)

	WorkerPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_worker_pool_size",
			Help: "Maximum number of concurrent blocking tasks",
		},
	)
)

// Scanner and tree metrics
var (
	ScannerItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_browser_scanner_items_returned",
			Help:    "Number of image descriptors returned per scan",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)

	ScannerEntriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_scanner_entries_skipped_total",
			Help: "Directory entries skipped because they could not be read or represented",
		},
	)

	TreeNodesEmitted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_tree_nodes_emitted",
			Help:    "Number of nodes in each built directory tree",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 20000},
		},
	)

	TreeChildrenSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_tree_children_skipped_total",
			Help: "Tree children skipped because they failed to build",
		},
	)
)

// Metadata and thumbnail metrics
var (
	MetadataExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_metadata_extractions_total",
			Help: "Total number of metadata extractions by format and status",
		},
		[]string{"format", "status"},
	)

	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_thumbnail_generations_total",
			Help: "Total number of thumbnails generated by status",
		},
		[]string{"status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_browser_thumbnail_generation_duration_seconds",
			Help:    "Thumbnail decode, resize and encode duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_events_total",
			Help: "Total number of filesystem events by operation",
		},
		[]string{"op"},
	)

	WatcherEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_events_dropped_total",
			Help: "Change events the sink did not accept",
		},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_errors_total",
			Help: "Total number of watcher errors",
		},
	)

	WatcherStartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_watcher_starts_total",
			Help: "Watch starts by result (started, replaced, error)",
		},
		[]string{"result"},
	)

	WatchActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_watcher_active",
			Help: "Whether a watch subscription is installed (1 = watching, 0 = idle)",
		},
	)

	WatchedDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_watcher_watched_directories",
			Help: "Number of directories registered with the active subscription",
		},
	)
)

// Event hub metrics
var (
	HubEventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_hub_events_delivered_total",
			Help: "Events delivered to subscribers by event name",
		},
		[]string{"name"},
	)

	HubEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_hub_events_dropped_total",
			Help: "Events dropped for slow or closed subscribers by event name",
		},
		[]string{"name"},
	)

	HubSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_hub_subscribers",
			Help: "Number of active event subscribers",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_browser_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_browser_filesystem_operation_errors_total",
			Help: "Filesystem operation errors",
		},
		[]string{"operation"},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_memory_usage_ratio",
			Help: "Heap allocation as a fraction of the memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_browser_memory_paused",
			Help: "Whether thumbnail decoding is paused for memory (1 = paused)",
		},
	)

	MemoryPausesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_browser_memory_pauses_total",
			Help: "Number of times decoding was paused for memory pressure",
		},
	)
)

// AppInfo exposes build information as labels.
var AppInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "image_browser_app_info",
		Help: "Application information",
	},
	[]string{"version", "commit", "go_version"},
)
