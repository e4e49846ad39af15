package memory

import (
	"runtime/debug"
	"testing"
)

// restoreMemoryLimit resets the process memory limit after a test.
func restoreMemoryLimit(t *testing.T) {
	t.Helper()
	previous := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(previous) })
}

func TestConfigureFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		ratio      string
		configured bool
		source     string
		goMemLimit int64
	}{
		{name: "unset", source: "none"},
		{name: "invalid limit", limit: "lots", source: "none"},
		{name: "negative limit", limit: "-5", source: "none"},
		{name: "default ratio", limit: "1000000", configured: true, source: "MEMORY_LIMIT", goMemLimit: 850000},
		{name: "custom ratio", limit: "1000000", ratio: "0.5", configured: true, source: "MEMORY_LIMIT", goMemLimit: 500000},
		{name: "ratio out of range", limit: "1000000", ratio: "1.5", configured: true, source: "MEMORY_LIMIT", goMemLimit: 850000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreMemoryLimit(t)
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", tt.limit)
			t.Setenv("MEMORY_RATIO", tt.ratio)

			result := ConfigureFromEnv()

			if result.Configured != tt.configured || result.Source != tt.source {
				t.Errorf("result = %+v", result)
			}
			if result.GoMemLimit != tt.goMemLimit {
				t.Errorf("GoMemLimit = %d, want %d", result.GoMemLimit, tt.goMemLimit)
			}
			if tt.configured && debug.SetMemoryLimit(-1) != tt.goMemLimit {
				t.Errorf("runtime limit = %d", debug.SetMemoryLimit(-1))
			}
		})
	}
}

func TestConfigureFromEnvRespectsGOMEMLIMIT(t *testing.T) {
	restoreMemoryLimit(t)
	t.Setenv("GOMEMLIMIT", "512MiB")
	t.Setenv("MEMORY_LIMIT", "1000")
	debug.SetMemoryLimit(512 << 20)

	result := ConfigureFromEnv()

	if result.Source != "GOMEMLIMIT" || !result.Configured || result.GoMemLimit != 512<<20 {
		t.Errorf("result = %+v", result)
	}
	if got := debug.SetMemoryLimit(-1); got != 512<<20 {
		t.Errorf("runtime limit = %d, MEMORY_LIMIT must not override GOMEMLIMIT", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:                 "0 B",
		1023:              "1023 B",
		1024:              "1.0 KiB",
		1536:              "1.5 KiB",
		1 << 20:           "1.0 MiB",
		3 * (1 << 30) / 2: "1.5 GiB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
