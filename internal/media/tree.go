package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"image-browser/internal/errors"
	"image-browser/internal/filesystem"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
)

// BuildTree returns a snapshot of root expanded at most depth levels below it.
//
// A directory reached with no depth left is listed with empty Children. A
// child that cannot be read is skipped; only a missing or unreadable root
// fails the call. Symlinks are followed like any other path, so a loop is
// bounded by depth alone.
func BuildTree(root string, depth int) (TreeEntry, error) {
	info, err := filesystem.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return TreeEntry{}, errors.NotFound("path does not exist: %s", root)
		}
		return TreeEntry{}, errors.IO(err, "failed to access %s", root)
	}

	entry, err := buildEntry(root, info, depth)
	if err != nil {
		return TreeEntry{}, err
	}

	metrics.TreeNodesEmitted.Observe(float64(entry.Count()))
	return entry, nil
}

// ListDirTree is the caller-facing tree build. It rejects a negative depth
// and a root that is not a directory before walking anything.
func ListDirTree(root string, depth int) (TreeEntry, error) {
	if depth < 0 {
		return TreeEntry{}, errors.InvalidArgument("depth must be >= 0, got %d", depth)
	}
	if err := requireDirectory(root); err != nil {
		return TreeEntry{}, err
	}
	return BuildTree(root, depth)
}

func buildEntry(path string, info os.FileInfo, depth int) (TreeEntry, error) {
	entry := TreeEntry{
		Path:     path,
		Name:     entryName(path),
		Kind:     KindFile,
		Children: []TreeEntry{},
	}
	if !info.IsDir() {
		return entry, nil
	}

	entry.Kind = KindDirectory
	if depth <= 0 {
		return entry, nil
	}

	dirents, err := filesystem.ReadDir(path)
	if err != nil && len(dirents) == 0 {
		return TreeEntry{}, errors.IO(err, "failed to read directory %s", path)
	}

	for _, dirent := range dirents {
		childPath := filepath.Join(path, dirent.Name())
		childInfo, err := filesystem.Stat(childPath)
		if err != nil {
			logging.Debug("tree: skipping %s: %v", childPath, err)
			metrics.TreeChildrenSkipped.Inc()
			continue
		}

		child, err := buildEntry(childPath, childInfo, depth-1)
		if err != nil {
			logging.Debug("tree: skipping %s: %v", childPath, err)
			metrics.TreeChildrenSkipped.Inc()
			continue
		}
		entry.Children = append(entry.Children, child)
	}

	sortTreeEntries(entry.Children)
	return entry, nil
}

// entryName is the base name, or the path itself for a filesystem root
// where Base would return a separator.
func entryName(path string) string {
	name := filepath.Base(path)
	if name == string(filepath.Separator) || name == "." {
		return path
	}
	return name
}

// sortTreeEntries puts directories before files, then orders each group by
// case-insensitive name. Names equal under folding fall back to byte order
// so the result does not depend on read order.
func sortTreeEntries(entries []TreeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
