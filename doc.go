// Package main provides the entry point for the image browser backend.
//
// The backend serves a local image-browsing UI: it lists the images in a
// folder, walks directory trees to a bounded depth, reads image headers,
// renders thumbnails and watches one root directory recursively, pushing
// every change to the UI as a Server-Sent Event.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Sets GOMEMLIMIT from MEMORY_LIMIT, then reads
//     environment variables (see [image-browser/internal/startup])
//  2. Metrics: Pre-populates label sets and installs the filesystem observer
//  3. Component Initialization:
//     - Event hub: Fans change events out to every open stream
//     - Watch registry: Holds at most one recursive watch, replaced on each start
//     - Worker pool: Runs every blocking filesystem or decode task
//     - Memory monitor: Holds thumbnail decodes back near the memory limit
//     - Command service: The operations the UI invokes
//  4. Boot Watch: Starts watching ROOT_DIR when it is set and usable
//  5. HTTP Server Setup: Routes, request logging, compression
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default 127.0.0.1:8080):
//     - GET  /api/adjacent?path=     images next to a file
//     - GET  /api/scan?path=         images in a folder
//     - GET  /api/tree?path=&depth=  directory tree
//     - POST /api/watch              {"rootPath": "..."} replaces the watch
//     - GET  /api/metadata?path=     dimensions, size and format
//     - GET  /api/thumbnail?path=&size=  JPEG thumbnail
//     - GET  /api/pick/file, /api/pick/folder  host pickers
//     - GET  /api/events?name=       change stream (fs://changed)
//     - GET  /healthz, /livez, /version
//
//  2. Metrics Server (default 127.0.0.1:9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// # Graceful Shutdown
//
//  1. Close the event hub, ending every open stream
//  2. Stop the directory watch
//  3. Stop the metrics collector, memory monitor and metrics server
//  4. Shut down the main HTTP server (30s timeout)
//
// The imgscan command in cmd/imgscan exposes the same operations on the
// command line.
package main
