package media

// ImageDescriptor identifies one supported image file. Path is the identity.
type ImageDescriptor struct {
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	Extension string `json:"extension"`
}

// ImageMetadata describes an image without its pixel data. Width and Height
// are zero for vector formats.
type ImageMetadata struct {
	Path   string `json:"path"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Size   uint64 `json:"size"`
	Format string `json:"format"`
}

// EntryKind distinguishes files from directories in a tree snapshot.
type EntryKind string

const (
	// KindFile is any non-directory entry.
	KindFile EntryKind = "file"
	// KindDirectory is a directory entry.
	KindDirectory EntryKind = "directory"
)

// TreeEntry is one node of a depth-bounded directory snapshot. Children is
// only populated for directories that were expanded, and is never nil so it
// encodes as [] rather than null.
type TreeEntry struct {
	Path     string      `json:"path"`
	Name     string      `json:"name"`
	Kind     EntryKind   `json:"kind"`
	Children []TreeEntry `json:"children"`
}

// IsDir reports whether the entry is a directory.
func (e TreeEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Count returns the number of nodes in the subtree rooted at e, including e.
func (e TreeEntry) Count() int {
	n := 1
	for _, child := range e.Children {
		n += child.Count()
	}
	return n
}
