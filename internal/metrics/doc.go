// Package metrics provides Prometheus instrumentation for the image browser
// backend.
//
// All metrics are prefixed with "image_browser_" and registered through
// promauto at package init.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight
//
// ## Command Metrics
//
// Every caller-facing operation (scan, tree, metadata, watch, ...) records
// its outcome by result code and its duration including worker queueing:
//   - CommandsTotal, CommandDuration
//   - WorkerTasksInFlight, WorkerPanicsTotal, WorkerPoolSize
//
// ## Filesystem Reads
//
//   - ScannerItemsReturned, ScannerEntriesSkipped
//   - TreeNodesEmitted, TreeChildrenSkipped
//   - MetadataExtractionsTotal (by format and status)
//   - FilesystemOperationDuration, FilesystemOperationErrors (recorded by the
//     observer returned from NewFilesystemObserver)
//
// ## Watch and Events
//
//   - WatcherEventsTotal, WatcherEventsDropped, WatcherErrors, WatcherStartsTotal
//   - WatchActive, WatchedDirectories, HubSubscribers (set by Collector)
//   - HubEventsDelivered, HubEventsDropped
//
// # Usage
//
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	collector := metrics.NewCollector(provider, 15*time.Second)
//	collector.Start()
//	defer collector.Stop()
package metrics
