package media

import (
	"image"
	"os"

	"image-browser/internal/errors"
	"image-browser/internal/filesystem"
	"image-browser/internal/mediatypes"
	"image-browser/internal/metrics"

	// Header decoders for image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/webp" // WebP format support
)

// ExtractMetadata returns the size, dimensions and format of the image at
// path. Dimensions come from the file header; pixel data is never decoded.
//
// Vector images are reported with zero dimensions and are not opened.
func ExtractMetadata(path string) (ImageMetadata, error) {
	info, err := filesystem.Stat(path)
	if err != nil {
		metrics.MetadataExtractionsTotal.WithLabelValues("unknown", "error").Inc()
		if os.IsNotExist(err) {
			return ImageMetadata{}, errors.NotFound("file does not exist: %s", path)
		}
		return ImageMetadata{}, errors.IO(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		metrics.MetadataExtractionsTotal.WithLabelValues("unknown", "error").Inc()
		return ImageMetadata{}, errors.InvalidArgument("path is a directory: %s", path)
	}

	meta := ImageMetadata{
		Path: path,
		Size: uint64(info.Size()),
	}

	if ext, ok := mediatypes.Extension(path); ok && mediatypes.IsVectorExtension(ext) {
		meta.Format = mediatypes.FormatTag(ext)
		metrics.MetadataExtractionsTotal.WithLabelValues(meta.Format, "success").Inc()
		return meta, nil
	}

	width, height, format, err := decodeHeader(path)
	if err != nil {
		metrics.MetadataExtractionsTotal.WithLabelValues("unknown", "error").Inc()
		return ImageMetadata{}, err
	}

	meta.Width = width
	meta.Height = height
	meta.Format = format
	metrics.MetadataExtractionsTotal.WithLabelValues(format, "success").Inc()
	return meta, nil
}

// decodeHeader reads just enough of the file to learn its format and size.
// The format is detected from content, not from the extension.
func decodeHeader(path string) (width, height uint32, format string, err error) {
	file, err := filesystem.Open(path)
	if err != nil {
		return 0, 0, "", errors.IO(err, "failed to open %s", path)
	}
	defer file.Close()

	config, name, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, "", errors.Decode(err, "failed to read image header of %s", path)
	}
	if config.Width < 0 || config.Height < 0 {
		return 0, 0, "", errors.Decode(nil, "invalid dimensions %dx%d in %s", config.Width, config.Height, path)
	}

	return uint32(config.Width), uint32(config.Height), mediatypes.FormatTag(name), nil
}
