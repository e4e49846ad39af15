// Package logging provides a simple leveled logging interface for the
// image browser backend.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is read once from DEBUG or LOG_LEVEL and can be overridden
// with SetLevel. Components that emit a lot of output (the watcher, the
// event hub, the worker pool) use Named to tag their lines.
package logging
