// Package commands is the operation layer between transports (HTTP, CLI)
// and the filesystem packages.
//
// Each Service method validates its input, runs the blocking work on a
// workers.Pool and returns either a value or an *errors.Error carrying a
// code the UI can show. "Nothing chosen" from a picker is a nil result
// with a nil error, never an error.
//
//	svc := commands.New(commands.Config{Pool: pool, Watcher: registry})
//	images, err := svc.ScanFolder(ctx, "/photos")
package commands
