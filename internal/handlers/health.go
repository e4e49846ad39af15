package handlers

import (
	"net/http"
	"runtime"
	"time"

	"image-browser/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Watch state
	Watching           bool   `json:"watching"`
	RootPath           string `json:"rootPath,omitempty"`
	WatchedDirectories int    `json:"watchedDirectories"`
	Subscribers        int    `json:"subscribers"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports the service state. It returns 503 while the watch
// registry is poisoned; the next successful watch clears it.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if h.hub != nil {
		response.Subscribers = h.hub.SubscriberCount()
	}

	status := http.StatusOK
	if h.watch != nil {
		response.Watching = h.watch.Watching()
		response.RootPath = h.watch.Root()
		response.WatchedDirectories = h.watch.WatchedDirectories()
		if h.watch.Poisoned() {
			response.Status = statusDegraded
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSONStatus(w, "alive")
}
