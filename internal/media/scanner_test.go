package media

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"image-browser/internal/errors"
	"image-browser/internal/mediatypes"
	"image-browser/internal/metrics"
)

func TestScanDirectoryForImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "A.jpg", "c.txt", "a.png"} {
		touch(t, filepath.Join(dir, name), "x")
	}

	got := ScanDirectoryForImages(dir)

	want := []string{"A.jpg", "a.png", "b.png"}
	if !equalStrings(filenames(got), want) {
		t.Fatalf("ScanDirectoryForImages() = %v, want %v", filenames(got), want)
	}

	for _, img := range got {
		if img.Path != filepath.Join(dir, img.Filename) {
			t.Errorf("Path = %q, want %q", img.Path, filepath.Join(dir, img.Filename))
		}
		if !mediatypes.ImageExtensions[img.Extension] {
			t.Errorf("Extension %q for %s is not a whitelisted lowercase extension", img.Extension, img.Filename)
		}
	}
	if got[0].Extension != "jpg" {
		t.Errorf("A.jpg extension = %q, want %q", got[0].Extension, "jpg")
	}
}

func TestScanDirectoryForImagesSortedAndIdempotent(t *testing.T) {
	dir := t.TempDir()
	names := []string{"Zebra.PNG", "apple.gif", "Banana.webp", "_x.bmp", "10.jpeg", "2.jpeg", "logo.svg", "notes.md"}
	for _, name := range names {
		touch(t, filepath.Join(dir, name), "x")
	}

	first := ScanDirectoryForImages(dir)
	second := ScanDirectoryForImages(dir)

	got := filenames(first)
	if !sort.StringsAreSorted(got) {
		t.Errorf("result not sorted by byte order: %v", got)
	}
	if len(got) != len(names)-1 {
		t.Errorf("got %d images, want %d", len(got), len(names)-1)
	}
	if !equalStrings(got, filenames(second)) {
		t.Errorf("second scan differs: %v vs %v", got, filenames(second))
	}
}

func TestScanDirectoryForImagesSkipsNonFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "real.png"), "x")
	if err := os.Mkdir(filepath.Join(dir, "folder.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Symlink(filepath.Join(dir, "real.png"), filepath.Join(dir, "link.png")); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(filepath.Join(dir, "folder.png"), filepath.Join(dir, "dirlink.png")); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(filepath.Join(dir, "missing.png"), filepath.Join(dir, "broken.png")); err != nil {
			t.Fatal(err)
		}
	}

	got := filenames(ScanDirectoryForImages(dir))

	want := []string{"real.png"}
	if runtime.GOOS != "windows" {
		want = []string{"link.png", "real.png"}
	}
	if !equalStrings(got, want) {
		t.Errorf("ScanDirectoryForImages() = %v, want %v", got, want)
	}
}

func TestScanDirectoryForImagesReadFailure(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{
			name: "missing directory",
			dir: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
		},
		{
			name: "path is a file",
			dir: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "file.png")
				touch(t, p, "x")
				return p
			},
		},
		{
			name: "empty directory",
			dir: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanDirectoryForImages(tt.dir(t))
			if got == nil {
				t.Fatal("expected empty non-nil slice, got nil")
			}
			if len(got) != 0 {
				t.Errorf("expected no images, got %v", filenames(got))
			}
		})
	}
}

func TestScanFolder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.png"), "x")
	file := filepath.Join(dir, "one.png")

	tests := []struct {
		name     string
		path     string
		wantCode errors.Code
		wantLen  int
	}{
		{name: "directory", path: dir, wantLen: 1},
		{name: "missing", path: filepath.Join(dir, "missing"), wantCode: errors.CodeNotFound},
		{name: "file", path: file, wantCode: errors.CodeInvalidArgument},
		{name: "empty path", path: "", wantCode: errors.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScanFolder(tt.path)
			if tt.wantCode != "" {
				if errors.CodeOf(err) != tt.wantCode {
					t.Fatalf("ScanFolder(%q) error = %v, want code %s", tt.path, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ScanFolder(%q) unexpected error: %v", tt.path, err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("got %d images, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestAdjacentImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.gif", "readme.txt"} {
		touch(t, filepath.Join(dir, name), "x")
	}

	got, err := AdjacentImages(filepath.Join(dir, "b.gif"))
	if err != nil {
		t.Fatalf("AdjacentImages() error: %v", err)
	}
	want := []string{"a.png", "b.gif", "c.png"}
	if !equalStrings(filenames(got), want) {
		t.Errorf("AdjacentImages() = %v, want %v", filenames(got), want)
	}

	// The file itself need not exist; only the parent is scanned.
	got, err = AdjacentImages(filepath.Join(dir, "deleted.png"))
	if err != nil {
		t.Fatalf("AdjacentImages() for deleted file error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d images, want 3", len(got))
	}
}

func TestAdjacentImagesNoParent(t *testing.T) {
	root := string(filepath.Separator)
	if runtime.GOOS == "windows" {
		root = `C:\`
	}

	for _, path := range []string{"", root} {
		if _, err := AdjacentImages(path); !errors.Is(err, errors.ErrInvalidArgument) {
			t.Errorf("AdjacentImages(%q) error = %v, want INVALID_ARGUMENT", path, err)
		}
	}
}

func TestAdjacentImagesBareFilename(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"), "x")
	t.Chdir(dir)

	got, err := AdjacentImages("a.png")
	if err != nil {
		t.Fatalf("AdjacentImages() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("AdjacentImages(%q) = %v, want an empty list", "a.png", filenames(got))
	}

	// An explicit ./ names the working directory.
	got, err = AdjacentImages("." + string(filepath.Separator) + "a.png")
	if err != nil {
		t.Fatalf("AdjacentImages() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d images, want 1", len(got))
	}
}

func scanSamples(t *testing.T, operation string) uint64 {
	t.Helper()
	var m dto.Metric
	observer := metrics.ScannerItemsReturned.WithLabelValues(operation)
	if err := observer.(prometheus.Metric).Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestScanResultRecordedOnce(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"), "x")

	scans, adjacent := scanSamples(t, "scan_directory"), scanSamples(t, "adjacent_images")

	if _, err := AdjacentImages(filepath.Join(dir, "a.png")); err != nil {
		t.Fatal(err)
	}
	if got := scanSamples(t, "adjacent_images") - adjacent; got != 1 {
		t.Errorf("adjacent_images samples = %d, want 1", got)
	}
	if got := scanSamples(t, "scan_directory") - scans; got != 0 {
		t.Errorf("scan_directory samples = %d, want 0", got)
	}

	if _, err := ScanFolder(dir); err != nil {
		t.Fatal(err)
	}
	if got := scanSamples(t, "scan_directory") - scans; got != 1 {
		t.Errorf("scan_directory samples = %d, want 1", got)
	}
}

func TestDescriptorFromPath(t *testing.T) {
	got := DescriptorFromPath(filepath.Join("photos", "IMG_01.JPG"))
	if got.Filename != "IMG_01.JPG" || got.Extension != "jpg" {
		t.Errorf("DescriptorFromPath() = %+v", got)
	}
}

func TestNavigation(t *testing.T) {
	images := []ImageDescriptor{
		{Path: "/p/a.png"},
		{Path: "/p/b.png"},
		{Path: "/p/c.png"},
	}

	tests := []struct {
		name    string
		current int
		next    int
		prev    int
	}{
		{name: "first", current: 0, next: 1, prev: 2},
		{name: "middle", current: 1, next: 2, prev: 0},
		{name: "last", current: 2, next: 0, prev: 1},
		{name: "not in list", current: -1, next: 0, prev: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(images, tt.current); got != tt.next {
				t.Errorf("Next(%d) = %d, want %d", tt.current, got, tt.next)
			}
			if got := Previous(images, tt.current); got != tt.prev {
				t.Errorf("Previous(%d) = %d, want %d", tt.current, got, tt.prev)
			}
		})
	}

	if got := IndexOf(images, "/p/b.png"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(images, "/p/z.png"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
	if Next(nil, 0) != -1 || Previous(nil, 0) != -1 {
		t.Error("navigation over empty list should return -1")
	}
}
