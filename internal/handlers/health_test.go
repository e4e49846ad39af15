package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"image-browser/internal/errors"
	"image-browser/internal/events"
	"image-browser/internal/startup"
)

type stubWatch struct {
	root     string
	dirs     int
	poisoned bool
}

func (s stubWatch) Root() string            { return s.root }
func (s stubWatch) Watching() bool          { return s.root != "" }
func (s stubWatch) WatchedDirectories() int { return s.dirs }
func (s stubWatch) Poisoned() bool          { return s.poisoned }

func TestHealthCheck(t *testing.T) {
	hub := events.NewHub(4)
	defer hub.Close()
	hub.Subscribe(events.ChangeEventName)

	tests := []struct {
		name       string
		watch      WatchState
		wantCode   int
		wantStatus string
		watching   bool
	}{
		{name: "idle", watch: stubWatch{}, wantCode: 200, wantStatus: statusHealthy},
		{name: "watching", watch: stubWatch{root: "/photos", dirs: 3}, wantCode: 200, wantStatus: statusHealthy, watching: true},
		{name: "poisoned", watch: stubWatch{poisoned: true}, wantCode: 503, wantStatus: statusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(nil, tt.watch, hub, Config{})
			w := get(h.HealthCheck, "/healthz")

			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != tt.wantStatus || resp.Watching != tt.watching {
				t.Errorf("response = %+v", resp)
			}
			if resp.Subscribers != 1 {
				t.Errorf("Subscribers = %d, want 1", resp.Subscribers)
			}
			if resp.GoVersion != runtime.Version() || resp.Version != startup.Version {
				t.Errorf("version fields = %q %q", resp.GoVersion, resp.Version)
			}
		})
	}
}

func TestHealthCheckReportsRoot(t *testing.T) {
	h := New(nil, stubWatch{root: "/photos", dirs: 7}, nil, Config{})
	w := get(h.HealthCheck, "/healthz")

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.RootPath != "/photos" || resp.WatchedDirectories != 7 {
		t.Errorf("response = %+v", resp)
	}
}

func TestLivenessCheck(t *testing.T) {
	h := &Handlers{}

	w := get(h.LivenessCheck, "/livez")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"alive"`) {
		t.Errorf("GET /livez = %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	h.LivenessCheck(w, httptest.NewRequest(http.MethodHead, "/livez", http.NoBody))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Errorf("HEAD /livez = %d with %d body bytes", w.Code, w.Body.Len())
	}
}

func TestGetVersion(t *testing.T) {
	h := &Handlers{}
	w := get(h.GetVersion, "/version")

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q", cc)
	}
	var info startup.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != startup.Version {
		t.Errorf("Version = %q", info.Version)
	}
}

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "not found", err: errors.NotFound("path does not exist: /x"), wantCode: 404, wantBody: "NOT_FOUND"},
		{name: "decode", err: errors.Decode(fmt.Errorf("bad header"), "cannot read"), wantCode: 422, wantBody: "DECODE_ERROR"},
		{name: "canceled", err: errors.Canceled(nil), wantCode: 408, wantBody: "CANCELED"},
		{name: "worker", err: errors.Worker("worker thread error in scan: boom"), wantCode: 500, wantBody: "WORKER_ERROR"},
		{name: "wrapped", err: fmt.Errorf("outer: %w", errors.InvalidArgument("bad")), wantCode: 400, wantBody: "INVALID_ARGUMENT"},
		{name: "plain", err: fmt.Errorf("something else"), wantCode: 500, wantBody: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeJSONError(w, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			body := decodeError(t, w)
			if body["code"] != tt.wantBody {
				t.Errorf("code = %q, want %q", body["code"], tt.wantBody)
			}
			if body["error"] != tt.err.Error() {
				t.Errorf("error = %q, want %q", body["error"], tt.err.Error())
			}
		})
	}
}

func TestIntQuery(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 9},
		{query: "?depth=3", want: 3},
		{query: "?depth=%203%20", want: 3},
		{query: "?depth=x", wantErr: true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/tree"+tt.query, http.NoBody)
		got, err := intQuery(r, "depth", 9)
		if (err != nil) != tt.wantErr {
			t.Errorf("intQuery(%q) error = %v", tt.query, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("intQuery(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
