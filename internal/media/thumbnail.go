package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"time"

	"image-browser/internal/errors"
	"image-browser/internal/logging"
	"image-browser/internal/mediatypes"
	"image-browser/internal/metrics"

	"github.com/disintegration/imaging"
)

const (
	// DefaultThumbnailSize is the bounding box edge used when none is given.
	DefaultThumbnailSize = 256

	// MaxThumbnailSize caps the requested bounding box edge.
	MaxThumbnailSize = 2048

	// MaxImagePixels is the largest source image (width * height) we will
	// decode for a thumbnail. A 100MP RGBA image needs ~400MB.
	MaxImagePixels = 100_000_000

	thumbnailQuality = 80
)

// Thumbnail decodes the image at path, fits it into a maxSize x maxSize box
// keeping its aspect ratio and returns it JPEG-encoded. Nothing is cached.
func Thumbnail(path string, maxSize int) ([]byte, error) {
	start := time.Now()
	data, err := thumbnail(path, maxSize)
	metrics.ThumbnailGenerationDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ThumbnailGenerationsTotal.WithLabelValues("success").Inc()
	case errors.Is(err, errors.ErrInvalidArgument):
		metrics.ThumbnailGenerationsTotal.WithLabelValues("unsupported").Inc()
	default:
		metrics.ThumbnailGenerationsTotal.WithLabelValues("error").Inc()
	}
	return data, err
}

func thumbnail(path string, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultThumbnailSize
	}
	if maxSize > MaxThumbnailSize {
		return nil, errors.InvalidArgument("thumbnail size %d exceeds maximum %d", maxSize, MaxThumbnailSize)
	}

	ext, ok := mediatypes.Extension(path)
	if !ok || !mediatypes.IsSupportedImage(path) {
		return nil, errors.InvalidArgument("not a supported image: %s", path)
	}
	if mediatypes.IsVectorExtension(ext) {
		return nil, errors.InvalidArgument("cannot rasterize vector image %s", path)
	}

	// Reads the header only, and reports NotFound/IO/Decode the same way the
	// metadata command does.
	meta, err := ExtractMetadata(path)
	if err != nil {
		return nil, err
	}
	if uint64(meta.Width)*uint64(meta.Height) > MaxImagePixels {
		return nil, errors.InvalidArgument("image %s is too large to thumbnail (%dx%d)", path, meta.Width, meta.Height)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Decode(err, "failed to decode %s", path)
	}

	return encodeThumbnail(img, maxSize)
}

func encodeThumbnail(img image.Image, maxSize int) ([]byte, error) {
	bounds := img.Bounds()
	thumb := img
	if bounds.Dx() > maxSize || bounds.Dy() > maxSize {
		thumb = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, errors.IO(err, "failed to encode thumbnail")
	}

	logging.Debug("Thumbnail %dx%d -> %dx%d (%d bytes)",
		bounds.Dx(), bounds.Dy(), thumb.Bounds().Dx(), thumb.Bounds().Dy(), buf.Len())
	return buf.Bytes(), nil
}
