// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - BIND_ADDR: Interface both servers listen on (default: 127.0.0.1)
//   - PORT: API server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - ROOT_DIR: Directory to watch at boot (default: none)
//   - TREE_DEPTH: Depth used when a tree request omits it (default: 1)
//   - MAX_TREE_DEPTH: Largest depth a caller may request (default: 16)
//   - WORKERS: Blocking-task concurrency, 0 for automatic (default: 0)
//   - EVENT_BUFFER: Per-subscriber event queue length (default: 64)
//   - THUMBNAIL_SIZE: Default thumbnail bounding box (default: 256)
//   - LOG_REQUESTS: Log each HTTP request (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// The memory package reads MEMORY_LIMIT and MEMORY_RATIO separately, before
// LoadConfig runs.
//
// Invalid numbers and booleans log a warning and fall back to the default.
// ROOT_DIR is checked but never created; when it is unusable the server
// still starts and waits for the UI to pick a folder.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
//   - [LogWorkerPoolInit]: Worker pool size
//   - [LogWatchInit]: Result of the boot-time watch
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	startup.LogServerStarted(startup.ServerConfig{
//	    Addr:            config.Addr(),
//	    MetricsAddr:     config.MetricsAddr(),
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
package startup
