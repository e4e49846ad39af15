package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"image-browser/internal/logging"
	"image-browser/internal/workers"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Defaults for every environment variable LoadConfig reads.
const (
	DefaultBindAddr      = "127.0.0.1"
	DefaultPort          = "8080"
	DefaultMetricsPort   = "9090"
	DefaultTreeDepth     = 1
	DefaultMaxTreeDepth  = 16
	DefaultEventBuffer   = 64
	DefaultThumbnailSize = 256
)

// Config holds all application configuration
type Config struct {
	BindAddr       string
	Port           string
	MetricsPort    string
	MetricsEnabled bool

	// RootDir is watched at boot when set. Empty means wait for the UI to
	// start a watch.
	RootDir string

	TreeDepth     int
	MaxTreeDepth  int
	Workers       int
	EventBuffer   int
	ThumbnailSize int

	LogRequests bool
}

// Addr returns the API listen address.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// MetricsAddr returns the metrics listen address.
func (c *Config) MetricsAddr() string {
	return c.BindAddr + ":" + c.MetricsPort
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config := &Config{
		BindAddr:       getEnv("BIND_ADDR", DefaultBindAddr),
		Port:           getEnv("PORT", DefaultPort),
		MetricsPort:    getEnv("METRICS_PORT", DefaultMetricsPort),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		RootDir:        getEnv("ROOT_DIR", ""),
		TreeDepth:      getEnvInt("TREE_DEPTH", DefaultTreeDepth),
		MaxTreeDepth:   getEnvInt("MAX_TREE_DEPTH", DefaultMaxTreeDepth),
		Workers:        getEnvInt(workers.EnvOverride, 0),
		EventBuffer:    getEnvInt("EVENT_BUFFER", DefaultEventBuffer),
		ThumbnailSize:  getEnvInt("THUMBNAIL_SIZE", DefaultThumbnailSize),
		LogRequests:    getEnvBool("LOG_REQUESTS", true),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	logging.Info("  BIND_ADDR:           %s", config.BindAddr)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  METRICS_PORT:        %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  ROOT_DIR:            %s", valueOrNone(config.RootDir))
	logging.Info("  TREE_DEPTH:          %d", config.TreeDepth)
	logging.Info("  MAX_TREE_DEPTH:      %d", config.MaxTreeDepth)
	logging.Info("  WORKERS:             %s", workersString(config.Workers))
	logging.Info("  EVENT_BUFFER:        %d", config.EventBuffer)
	logging.Info("  THUMBNAIL_SIZE:      %d", config.ThumbnailSize)
	logging.Info("  LOG_REQUESTS:        %v", config.LogRequests)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	if config.RootDir != "" {
		logging.Info("")
		logging.Info("------------------------------------------------------------")
		logging.Info("DIRECTORY SETUP")
		logging.Info("------------------------------------------------------------")

		rootDir, err := filepath.Abs(config.RootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root directory path: %w", err)
		}
		config.RootDir = rootDir
		logging.Info("  Root directory (absolute): %s", rootDir)

		if err := checkDirectory(rootDir); err != nil {
			logging.Warn("  Root directory issue: %v", err)
			logging.Warn("  Watching will wait for a request from the UI")
			config.RootDir = ""
		}
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Boot watch:  %s", enabledString(config.RootDir != ""))
	logging.Info("    Metrics:     %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func (c *Config) validate() error {
	if c.TreeDepth < 0 {
		logging.Warn("  Invalid TREE_DEPTH %d, using default: %d", c.TreeDepth, DefaultTreeDepth)
		c.TreeDepth = DefaultTreeDepth
	}
	if c.MaxTreeDepth <= 0 {
		logging.Warn("  Invalid MAX_TREE_DEPTH %d, using default: %d", c.MaxTreeDepth, DefaultMaxTreeDepth)
		c.MaxTreeDepth = DefaultMaxTreeDepth
	}
	if c.TreeDepth > c.MaxTreeDepth {
		return fmt.Errorf("TREE_DEPTH (%d) exceeds MAX_TREE_DEPTH (%d)", c.TreeDepth, c.MaxTreeDepth)
	}
	if c.EventBuffer <= 0 {
		logging.Warn("  Invalid EVENT_BUFFER %d, using default: %d", c.EventBuffer, DefaultEventBuffer)
		c.EventBuffer = DefaultEventBuffer
	}
	if c.ThumbnailSize <= 0 {
		logging.Warn("  Invalid THUMBNAIL_SIZE %d, using default: %d", c.ThumbnailSize, DefaultThumbnailSize)
		c.ThumbnailSize = DefaultThumbnailSize
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.Port == c.MetricsPort && c.MetricsEnabled {
		return fmt.Errorf("PORT and METRICS_PORT must differ (both %s)", c.Port)
	}
	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func workersString(n int) string {
	if n <= 0 {
		return fmt.Sprintf("auto (%d)", workers.ForIO(0))
	}
	return strconv.Itoa(n)
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogWatchInit logs the result of the boot-time watch.
func LogWatchInit(root string, err error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("WATCHER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	if err != nil {
		logging.Warn("  Failed to watch %s: %v", root, err)
		logging.Warn("  Change notifications start when the UI opens a folder")
		return
	}
	logging.Info("  [OK] Watching %s", root)
}

// LogWorkerPoolInit logs the worker pool size.
func LogWorkerPoolInit(size int) {
	logging.Info("  [OK] Worker pool ready (%d workers)", size)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes, grouped by prefix, at
// debug level.
func LogHTTPRoutes(router *mux.Router, logRequests bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}
			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
		}
	}

	if logRequests {
		logging.Info("  Request logging: ON")
	} else {
		logging.Info("  Request logging: OFF (set LOG_REQUESTS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}
	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Addr            string
	MetricsAddr     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    API:           http://%s/api", config.Addr)
	logging.Info("    Events:        http://%s/api/events", config.Addr)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://%s/metrics", config.MetricsAddr)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...any) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    ____                              ____
   /  _/___ ___  ____ _____ ____     / __ )_________ _      __________  _____
   / // __ '__ \/ __ '/ __ '/ _ \   / __  / ___/ __ \ | /| / / ___/ _ \/ ___/
 _/ // / / / / / /_/ / /_/ /  __/  / /_/ / /  / /_/ / |/ |/ (__  )  __/ /
/___/_/ /_/ /_/\__,_/\__, /\___/  /_____/_/   \____/|__/|__/____/\___/_/
                    /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
	}

	logging.Info("")
}

// checkDirectory verifies path is an existing, readable directory. Unlike
// the server's cache directories it is never created.
func checkDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("directory is not readable: %w", err)
	}

	if logging.IsDebugEnabled() {
		fileCount, dirCount := 0, 0
		for _, e := range entries {
			if e.IsDir() {
				dirCount++
			} else {
				fileCount++
			}
		}
		logging.Debug("    Contents: %d files, %d directories (top level)", fileCount, dirCount)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
