package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"image-browser/internal/commands"
	"image-browser/internal/events"
	"image-browser/internal/filesystem"
	"image-browser/internal/handlers"
	"image-browser/internal/logging"
	"image-browser/internal/memory"
	"image-browser/internal/metrics"
	"image-browser/internal/middleware"
	"image-browser/internal/picker"
	"image-browser/internal/startup"
	"image-browser/internal/watcher"
	"image-browser/internal/workers"
)

const metricsInterval = 15 * time.Second

func main() {
	startTime := time.Now()

	// Must run before any large allocation.
	memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.InitializeMetrics()
	metrics.AppInfo.WithLabelValues(startup.Version, startup.Commit, startup.GoVersion).Set(1)
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	hub := events.NewHub(config.EventBuffer)
	registry := watcher.NewRegistry(hub.Sink(events.ChangeEventName))

	pool := workers.NewPool(config.Workers)
	startup.LogWorkerPoolInit(pool.Size())

	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()

	svc := commands.New(commands.Config{
		Pool:         pool,
		Watcher:      registry,
		Picker:       picker.NewTerminal(os.Stdin, os.Stdout),
		DecodeGate:   monitor,
		MaxTreeDepth: config.MaxTreeDepth,
	})

	if config.RootDir != "" {
		startup.LogWatchInit(config.RootDir, registry.Start(config.RootDir))
	}

	h := handlers.New(svc, registry, hub, handlers.Config{
		TreeDepth:     config.TreeDepth,
		ThumbnailSize: config.ThumbnailSize,
	})

	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogRequests)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.Enabled = config.LogRequests
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(
		middleware.Logger(loggingConfig)(router),
	)

	srv := &http.Server{
		Addr:              config.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams stay open, so writes are not bounded.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(statsAdapter{registry: registry, hub: hub}, metricsInterval)
		collector.Start()

		metricsSrv = newMetricsServer(config.MetricsAddr())
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv, collector, monitor, registry, hub)

	startup.LogServerStarted(startup.ServerConfig{
		Addr:            config.Addr(),
		MetricsAddr:     config.MetricsAddr(),
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/adjacent", h.AdjacentImages).Methods("GET")
	api.HandleFunc("/scan", h.ScanFolder).Methods("GET")
	api.HandleFunc("/tree", h.ListDirTree).Methods("GET")
	api.HandleFunc("/watch", h.StartWatch).Methods("POST")
	api.HandleFunc("/metadata", h.ImageMetadata).Methods("GET")
	api.HandleFunc("/thumbnail", h.Thumbnail).Methods("GET")
	api.HandleFunc("/pick/file", h.PickImageFile).Methods("GET")
	api.HandleFunc("/pick/folder", h.PickImageFolder).Methods("GET")
	api.HandleFunc("/events", h.Events).Methods("GET")

	return r
}

func newMetricsServer(addr string) *http.Server {
	serveMux := http.NewServeMux()
	serveMux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           serveMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// statsAdapter feeds the watch registry and event hub into the metrics collector.
type statsAdapter struct {
	registry *watcher.Registry
	hub      *events.Hub
}

func (a statsAdapter) GetStats() metrics.Stats {
	return metrics.Stats{
		Watching:           a.registry.Watching(),
		WatchedDirectories: a.registry.WatchedDirectories(),
		Subscribers:        a.hub.SubscriberCount(),
	}
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector, monitor *memory.Monitor, registry *watcher.Registry, hub *events.Hub) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Closing the hub first ends every event stream so Shutdown does not
	// wait on them.
	startup.LogShutdownStep("Closing event streams")
	hub.Close()
	startup.LogShutdownStepComplete("Event streams closed")

	startup.LogShutdownStep("Stopping directory watch")
	if err := registry.Close(); err != nil {
		logging.Warn("Watch shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("Directory watch stopped")
	}

	if collector != nil {
		collector.Stop()
	}
	monitor.Stop()

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
