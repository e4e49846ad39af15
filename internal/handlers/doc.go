// Package handlers provides the HTTP surface of the image browser.
//
// Each browsing handler reads its arguments from the query string (or a
// JSON body for POST /api/watch), runs the matching command on the worker
// pool and writes the result as JSON. Failures are written as
//
//	{"code": "NOT_FOUND", "error": "path does not exist: /photos/x"}
//
// with the status returned by the code's HTTPStatus method.
//
// It includes handlers for:
//   - Folder scans, adjacent images and directory trees
//   - Image metadata and JPEG thumbnails
//   - Starting the directory watch and streaming change events
//   - Host file and folder pickers
//   - Health, liveness and version
package handlers
