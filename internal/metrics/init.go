package metrics

import (
	"image-browser/internal/errors"
	"image-browser/internal/filesystem"
	"image-browser/internal/mediatypes"
)

// Operations are the command names used as the "operation" label.
var Operations = []string{
	"adjacent_images", "scan_folder", "list_dir_tree", "start_watch",
	"image_metadata", "thumbnail", "pick_image_file", "pick_image_folder",
}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	statuses := []errors.Code{
		errors.CodeNotFound, errors.CodeInvalidArgument, errors.CodeIO,
		errors.CodeDecode, errors.CodeWatch, errors.CodeWorker, errors.CodeCanceled,
	}

	for _, op := range Operations {
		CommandsTotal.WithLabelValues(op, "success")
		for _, code := range statuses {
			CommandsTotal.WithLabelValues(op, string(code))
		}
		CommandDuration.WithLabelValues(op)
	}

	for _, op := range []string{"scan_directory", "adjacent_images"} {
		ScannerItemsReturned.WithLabelValues(op)
	}

	for ext := range mediatypes.ImageExtensions {
		format := mediatypes.FormatTag(ext)
		MetadataExtractionsTotal.WithLabelValues(format, "success")
		MetadataExtractionsTotal.WithLabelValues(format, "error")
	}

	for _, status := range []string{"success", "error", "unsupported"} {
		ThumbnailGenerationsTotal.WithLabelValues(status)
	}

	for _, op := range []string{"create", "write", "remove", "rename", "chmod"} {
		WatcherEventsTotal.WithLabelValues(op)
	}

	for _, result := range []string{"started", "replaced", "error"} {
		WatcherStartsTotal.WithLabelValues(result)
	}

	for _, op := range filesystem.Operations {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
	}
}
