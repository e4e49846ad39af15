/*
Package filesystem wraps the handful of filesystem reads the backend performs
(stat, lstat, readdir, open) so each one is timed and reported to a metrics
Observer.

# Purpose

The scanner, tree builder and metadata extractor only ever read the
filesystem. Routing those reads through this package gives one place to
measure them without every caller importing Prometheus.

Failures are returned unchanged. Nothing here retries: transient I/O errors
are reported to the caller, which decides whether to swallow them (per-entry
scan failures) or surface them (metadata extraction).

# Usage

	import "image-browser/internal/filesystem"

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
	    return nil
	}

	info, err := filesystem.Stat(path)

# Metrics

At startup the metrics package installs its observer:

	filesystem.SetObserver(metrics.NewFilesystemObserver())

Without an observer (tests, the CLI) recording is skipped.
*/
package filesystem
