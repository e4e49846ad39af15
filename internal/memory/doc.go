// Package memory keeps thumbnail decoding inside the process memory limit.
//
// [ConfigureFromEnv] derives GOMEMLIMIT from a container limit
// (MEMORY_LIMIT and MEMORY_RATIO) unless GOMEMLIMIT is already set.
//
// A [Monitor] samples the heap and pauses new full-image decodes while
// usage is above the critical mark. The command layer calls [Monitor.Wait]
// before each thumbnail; header-only reads (metadata, scans, trees) never
// wait.
package memory
