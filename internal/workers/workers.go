package workers

import (
	"os"
	"runtime"
	"strconv"
)

// EnvOverride names the environment variable that pins the worker count.
const EnvOverride = "WORKERS"

// Count sizes a pool as multiplier tasks per available CPU, with at least
// one. A limit above zero caps the result.
//
// Available CPUs come from GOMAXPROCS, which follows container CPU quotas.
// A positive integer in WORKERS replaces the computed size but is still
// capped by limit.
func Count(multiplier float64, limit int) int {
	if n, ok := envCount(); ok {
		return capAt(n, limit)
	}

	n := int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	return capAt(max(n, 1), limit)
}

func envCount() (int, bool) {
	raw := os.Getenv(EnvOverride)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warn("ignoring %s=%q: want a positive integer", EnvOverride, raw)
		return 0, false
	}
	return n, true
}

func capAt(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}

// ForCPU sizes a pool for CPU-bound work such as thumbnail decoding.
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO sizes a pool for directory reads and header parsing.
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// ForMixed sizes a pool for work that both reads and decodes.
func ForMixed(limit int) int {
	return Count(1.5, limit)
}
