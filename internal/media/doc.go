// Package media reads image directories and image files.
//
// It provides three snapshot operations, all synchronous and independent of
// each other, plus on-demand thumbnails:
//
//   - ScanDirectoryForImages / ScanFolder / AdjacentImages: the supported
//     images directly inside one directory, sorted by filename in byte order.
//     That order is what next/previous navigation (Next, Previous) relies on.
//   - BuildTree / ListDirTree: a depth-bounded tree of files and directories,
//     directories first, then case-insensitive name.
//   - ExtractMetadata: size, format and dimensions read from the file header.
//     svg files report 0x0 and are never opened.
//   - Thumbnail: a JPEG preview fitted into a square box.
//
// # Error Handling
//
// Per-entry failures (an unreadable child, a broken symlink) are skipped.
// Only a failure of the root itself is returned, as an *errors.Error with
// code NOT_FOUND, INVALID_ARGUMENT, IO_ERROR or DECODE_ERROR.
//
// ScanDirectoryForImages swallows even a root failure and returns an empty
// list; use ScanFolder when a missing directory must be reported.
//
// # Concurrency
//
// Functions share no state and may run concurrently. Callers in the command
// layer run them on a worker pool so HTTP handlers never block on disk.
package media
