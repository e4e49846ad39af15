package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

// clearConfigEnv unsets every variable LoadConfig reads for the duration
// of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BIND_ADDR", "PORT", "METRICS_PORT", "METRICS_ENABLED", "ROOT_DIR",
		"TREE_DEPTH", "MAX_TREE_DEPTH", "WORKERS", "EVENT_BUFFER",
		"THUMBNAIL_SIZE", "LOG_REQUESTS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if config.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %s", config.Addr())
	}
	if config.MetricsAddr() != "127.0.0.1:9090" {
		t.Errorf("MetricsAddr() = %s", config.MetricsAddr())
	}
	if !config.MetricsEnabled || !config.LogRequests {
		t.Error("metrics and request logging should default to on")
	}
	if config.RootDir != "" {
		t.Errorf("RootDir = %q, want empty", config.RootDir)
	}
	if config.TreeDepth != DefaultTreeDepth || config.MaxTreeDepth != DefaultMaxTreeDepth {
		t.Errorf("depths = %d/%d", config.TreeDepth, config.MaxTreeDepth)
	}
	if config.EventBuffer != DefaultEventBuffer || config.ThumbnailSize != DefaultThumbnailSize {
		t.Errorf("buffer/thumbnail = %d/%d", config.EventBuffer, config.ThumbnailSize)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	root := t.TempDir()

	t.Setenv("BIND_ADDR", "0.0.0.0")
	t.Setenv("PORT", "8181")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("ROOT_DIR", root)
	t.Setenv("TREE_DEPTH", "3")
	t.Setenv("MAX_TREE_DEPTH", "5")
	t.Setenv("WORKERS", "7")
	t.Setenv("EVENT_BUFFER", "not-a-number")
	t.Setenv("THUMBNAIL_SIZE", "-4")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if config.Addr() != "0.0.0.0:8181" {
		t.Errorf("Addr() = %s", config.Addr())
	}
	if config.MetricsEnabled {
		t.Error("METRICS_ENABLED=false not applied")
	}
	if config.RootDir != root {
		t.Errorf("RootDir = %q, want %q", config.RootDir, root)
	}
	if config.TreeDepth != 3 || config.MaxTreeDepth != 5 || config.Workers != 7 {
		t.Errorf("got depth=%d max=%d workers=%d", config.TreeDepth, config.MaxTreeDepth, config.Workers)
	}
	if config.EventBuffer != DefaultEventBuffer {
		t.Errorf("invalid EVENT_BUFFER should fall back, got %d", config.EventBuffer)
	}
	if config.ThumbnailSize != DefaultThumbnailSize {
		t.Errorf("negative THUMBNAIL_SIZE should fall back, got %d", config.ThumbnailSize)
	}
}

func TestLoadConfigUnusableRootDir(t *testing.T) {
	clearConfigEnv(t)
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, root := range []string{filepath.Join(t.TempDir(), "missing"), file} {
		t.Setenv("ROOT_DIR", root)
		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() error: %v", err)
		}
		if config.RootDir != "" {
			t.Errorf("unusable ROOT_DIR %q should be cleared, got %q", root, config.RootDir)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "depth above max", env: map[string]string{"TREE_DEPTH": "9", "MAX_TREE_DEPTH": "4"}},
		{name: "same ports", env: map[string]string{"PORT": "9000", "METRICS_PORT": "9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/scan", func(_ http.ResponseWriter, _ *http.Request) {}).Methods("GET").Name("scan")
	router.HandleFunc("/healthz", func(_ http.ResponseWriter, _ *http.Request) {})

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes() error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	if routes[0] != (RouteInfo{Method: "GET", Path: "/api/scan", Name: "scan"}) {
		t.Errorf("routes[0] = %+v", routes[0])
	}
	if routes[1].Method != "*" {
		t.Errorf("route without methods should report *, got %s", routes[1].Method)
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := map[string]string{
		"/api/scan":        "api/scan",
		"/api/events":      "api/events",
		"/healthz":         "healthz",
		"/":                "",
		"/api":             "api",
		"/api/tree/nested": "api/tree",
	}
	for path, want := range tests {
		if got := getRouteGroup(path); got != want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", path, got, want)
		}
	}
}
