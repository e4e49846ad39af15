package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"image-browser/internal/errors"
	"image-browser/internal/filesystem"
	"image-browser/internal/logging"
	"image-browser/internal/mediatypes"
	"image-browser/internal/metrics"
)

// ScanDirectoryForImages lists the supported images directly inside dir,
// sorted by filename in byte order.
//
// Read failures are swallowed: a missing or unreadable directory yields an
// empty list, and entries that cannot be stat'd or whose names are not valid
// UTF-8 are skipped. Callers that need to distinguish "missing" from "empty"
// must check dir first.
func ScanDirectoryForImages(dir string) []ImageDescriptor {
	return scanImages(dir, "scan_directory")
}

// scanImages records the result size under operation.
func scanImages(dir, operation string) []ImageDescriptor {
	images := []ImageDescriptor{}

	entries, err := filesystem.ReadDir(dir)
	if err != nil {
		logging.Debug("scan of %s failed, returning no images: %v", dir, err)
		// os.ReadDir may return a partial listing alongside the error.
		if len(entries) == 0 {
			metrics.ScannerItemsReturned.WithLabelValues(operation).Observe(0)
			return images
		}
	}

	for _, entry := range entries {
		image, ok := entryToDescriptor(dir, entry)
		if !ok {
			continue
		}
		images = append(images, image)
	}

	sortByFilename(images)

	metrics.ScannerItemsReturned.WithLabelValues(operation).Observe(float64(len(images)))
	return images
}

// entryToDescriptor converts a directory entry to an ImageDescriptor when it
// is a regular file (directly or through a symlink) with a supported extension.
func entryToDescriptor(dir string, entry os.DirEntry) (ImageDescriptor, bool) {
	name := entry.Name()
	if !utf8.ValidString(name) {
		metrics.ScannerEntriesSkipped.Inc()
		return ImageDescriptor{}, false
	}

	if !mediatypes.IsSupportedImage(name) {
		return ImageDescriptor{}, false
	}

	path := filepath.Join(dir, name)
	if !isRegularFile(entry, path) {
		return ImageDescriptor{}, false
	}

	ext, _ := mediatypes.Extension(name)
	return ImageDescriptor{
		Path:      path,
		Filename:  name,
		Extension: ext,
	}, true
}

// isRegularFile follows symlinks so a link to an image counts and a link to
// a directory does not.
func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := filesystem.Stat(path)
	if err != nil {
		metrics.ScannerEntriesSkipped.Inc()
		return false
	}
	return info.Mode().IsRegular()
}

func sortByFilename(images []ImageDescriptor) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Filename < images[j].Filename
	})
}

// AdjacentImages returns the images in the same directory as filePath, so
// the UI can step to the next or previous image.
//
// A bare filename such as "a.png" has no parent directory and yields an
// empty list rather than a scan of the working directory.
func AdjacentImages(filePath string) ([]ImageDescriptor, error) {
	if filePath == "" {
		return nil, errors.InvalidArgument("could not get parent directory of an empty path")
	}
	if !strings.ContainsAny(filePath, separators) {
		return []ImageDescriptor{}, nil
	}

	dir := filepath.Dir(filepath.Clean(filePath))
	if dir == filepath.Clean(filePath) {
		// filepath.Dir of a root ("/" or "C:\") is the root itself.
		return nil, errors.InvalidArgument("could not get parent directory of %s", filePath)
	}

	return scanImages(dir, "adjacent_images"), nil
}

// separators are the characters that end a directory component.
const separators = "/" + string(filepath.Separator)

// ScanFolder is the caller-facing scan: unlike ScanDirectoryForImages it
// fails when dir is missing or is not a directory.
func ScanFolder(dir string) ([]ImageDescriptor, error) {
	if err := requireDirectory(dir); err != nil {
		return nil, err
	}
	return ScanDirectoryForImages(dir), nil
}

// requireDirectory returns NOT_FOUND, INVALID_ARGUMENT or IO_ERROR when path
// is not an existing directory.
func requireDirectory(path string) error {
	if path == "" {
		return errors.InvalidArgument("path is required")
	}
	info, err := filesystem.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("directory does not exist: %s", path)
		}
		return errors.IO(err, "failed to access %s", path)
	}
	if !info.IsDir() {
		return errors.InvalidArgument("path is not a directory: %s", path)
	}
	return nil
}

// DescriptorFromPath builds a descriptor for a path chosen outside a scan,
// such as a file picked by the user. It does not touch the filesystem.
func DescriptorFromPath(path string) ImageDescriptor {
	ext, _ := mediatypes.Extension(path)
	return ImageDescriptor{
		Path:      path,
		Filename:  filepath.Base(path),
		Extension: ext,
	}
}

// IndexOf returns the position of path in images, or -1.
func IndexOf(images []ImageDescriptor, path string) int {
	for i, image := range images {
		if image.Path == path {
			return i
		}
	}
	return -1
}

// Next returns the index after current, wrapping to the start. It returns
// -1 for an empty list.
func Next(images []ImageDescriptor, current int) int {
	if len(images) == 0 {
		return -1
	}
	if current < 0 {
		return 0
	}
	return (current + 1) % len(images)
}

// Previous returns the index before current, wrapping to the end. It
// returns -1 for an empty list.
func Previous(images []ImageDescriptor, current int) int {
	if len(images) == 0 {
		return -1
	}
	if current <= 0 || current >= len(images) {
		return len(images) - 1
	}
	return current - 1
}
