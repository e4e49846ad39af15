package mediatypes

import (
	"testing"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "jpg", path: "/a/b.jpg", want: true},
		{name: "uppercase JPEG", path: "/a/B.JPEG", want: true},
		{name: "mixed case png", path: "shot.PnG", want: true},
		{name: "gif", path: "anim.gif", want: true},
		{name: "bmp", path: "old.bmp", want: true},
		{name: "webp", path: "new.webp", want: true},
		{name: "svg", path: "logo.svg", want: true},
		{name: "text file", path: "notes.txt", want: false},
		{name: "tiff not whitelisted", path: "scan.tiff", want: false},
		{name: "no extension", path: "/a/README", want: false},
		{name: "dotfile", path: "/a/.png", want: false},
		{name: "trailing dot", path: "/a/file.", want: false},
		{name: "extension on directory part only", path: "/a.png/file", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupportedImage(tt.path); got != tt.want {
				t.Errorf("IsSupportedImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "photo.JPG", want: "jpg", wantOK: true},
		{path: "archive.tar.GZ", want: "gz", wantOK: true},
		{path: "README", want: "", wantOK: false},
		{path: ".bashrc", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Extension(tt.path)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Extension(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatTag(t *testing.T) {
	tests := map[string]string{
		"jpg":  "jpeg",
		"JPG":  "jpeg",
		".png": "png",
		"jpeg": "jpeg",
		"webp": "webp",
	}

	for input, want := range tests {
		if got := FormatTag(input); got != want {
			t.Errorf("FormatTag(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsVectorExtension(t *testing.T) {
	if !IsVectorExtension("svg") {
		t.Error("svg should be a vector extension")
	}
	if IsVectorExtension("png") {
		t.Error("png should not be a vector extension")
	}
}

func TestGetMimeType(t *testing.T) {
	if got := GetMimeType("svg"); got != "image/svg+xml" {
		t.Errorf("GetMimeType(svg) = %q", got)
	}
	if got := GetMimeType("xyz"); got != "application/octet-stream" {
		t.Errorf("GetMimeType(xyz) = %q", got)
	}
}

func TestWhitelistHasMimeTypes(t *testing.T) {
	for ext := range ImageExtensions {
		if _, ok := MimeTypes[ext]; !ok {
			t.Errorf("extension %q has no MIME type", ext)
		}
	}
}
