package commands

import (
	"context"
	"time"

	"image-browser/internal/errors"
	"image-browser/internal/logging"
	"image-browser/internal/media"
	"image-browser/internal/mediatypes"
	"image-browser/internal/metrics"
	"image-browser/internal/picker"
	"image-browser/internal/workers"
)

var log = logging.Named("commands")

// DefaultMaxTreeDepth bounds ListDirTree when the config does not.
const DefaultMaxTreeDepth = 16

// Watcher installs a watch on a root, replacing any previous one.
type Watcher interface {
	Start(root string) error
}

// DecodeGate holds full-image decodes back under memory pressure.
type DecodeGate interface {
	Wait(ctx context.Context) error
}

// Config holds the Service dependencies.
type Config struct {
	Pool         *workers.Pool
	Watcher      Watcher
	Picker       picker.Picker
	DecodeGate   DecodeGate
	MaxTreeDepth int
}

// Service exposes the operations the UI invokes. Every blocking body runs
// on the worker pool; the caller only waits for the result and may stop
// waiting when its context ends.
type Service struct {
	pool         *workers.Pool
	watcher      Watcher
	picker       picker.Picker
	gate         DecodeGate
	maxTreeDepth int
}

// New creates a Service. A nil Pool gets a default-sized pool and a nil
// Picker never chooses anything.
func New(cfg Config) *Service {
	if cfg.Pool == nil {
		cfg.Pool = workers.NewPool(0)
	}
	if cfg.Picker == nil {
		cfg.Picker = picker.Static{}
	}
	if cfg.MaxTreeDepth <= 0 {
		cfg.MaxTreeDepth = DefaultMaxTreeDepth
	}
	return &Service{
		pool:         cfg.Pool,
		watcher:      cfg.Watcher,
		picker:       cfg.Picker,
		gate:         cfg.DecodeGate,
		maxTreeDepth: cfg.MaxTreeDepth,
	}
}

// MaxTreeDepth returns the largest depth ListDirTree accepts.
func (s *Service) MaxTreeDepth() int {
	return s.maxTreeDepth
}

// call runs fn on the pool and records the outcome under operation.
func call[T any](ctx context.Context, s *Service, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()
	value, err := workers.Do(ctx, s.pool, operation, fn)
	metrics.CommandDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = string(errors.CodeOf(err))
		log.Debug("%s failed: %v", operation, err)
	}
	metrics.CommandsTotal.WithLabelValues(operation, status).Inc()
	return value, err
}

// AdjacentImages lists the images next to filePath, in navigation order.
func (s *Service) AdjacentImages(ctx context.Context, filePath string) ([]media.ImageDescriptor, error) {
	return call(ctx, s, "adjacent_images", func() ([]media.ImageDescriptor, error) {
		return media.AdjacentImages(filePath)
	})
}

// ScanFolder lists the images directly inside dir.
func (s *Service) ScanFolder(ctx context.Context, dir string) ([]media.ImageDescriptor, error) {
	return call(ctx, s, "scan_folder", func() ([]media.ImageDescriptor, error) {
		return media.ScanFolder(dir)
	})
}

// ListDirTree builds a directory tree of at most depth levels.
func (s *Service) ListDirTree(ctx context.Context, root string, depth int) (media.TreeEntry, error) {
	return call(ctx, s, "list_dir_tree", func() (media.TreeEntry, error) {
		if depth > s.maxTreeDepth {
			return media.TreeEntry{}, errors.InvalidArgument("depth %d exceeds maximum %d", depth, s.maxTreeDepth)
		}
		return media.ListDirTree(root, depth)
	})
}

// StartWatch watches root, replacing any previous watch.
func (s *Service) StartWatch(ctx context.Context, root string) error {
	_, err := call(ctx, s, "start_watch", func() (struct{}, error) {
		if s.watcher == nil {
			return struct{}{}, errors.Watch(nil, "watching is not available")
		}
		return struct{}{}, s.watcher.Start(root)
	})
	return err
}

// ImageMetadata reads size, format and dimensions of one image.
func (s *Service) ImageMetadata(ctx context.Context, path string) (media.ImageMetadata, error) {
	return call(ctx, s, "image_metadata", func() (media.ImageMetadata, error) {
		return media.ExtractMetadata(path)
	})
}

// Thumbnail renders a JPEG preview fitted into size x size. With a
// DecodeGate configured it first waits for memory to allow the decode.
func (s *Service) Thumbnail(ctx context.Context, path string, size int) ([]byte, error) {
	if s.gate != nil {
		if err := s.gate.Wait(ctx); err != nil {
			metrics.CommandsTotal.WithLabelValues("thumbnail", string(errors.CodeOf(err))).Inc()
			return nil, err
		}
	}
	return call(ctx, s, "thumbnail", func() ([]byte, error) {
		return media.Thumbnail(path, size)
	})
}

// PickImageFile asks the user for an image. It returns nil when nothing
// was chosen.
func (s *Service) PickImageFile(ctx context.Context) (*media.ImageDescriptor, error) {
	return call(ctx, s, "pick_image_file", func() (*media.ImageDescriptor, error) {
		path, ok, err := s.picker.PickFile(ctx)
		if err != nil || !ok {
			return nil, err
		}
		if !mediatypes.IsSupportedImage(path) {
			return nil, errors.InvalidArgument("not a supported image: %s", path)
		}
		image := media.DescriptorFromPath(path)
		return &image, nil
	})
}

// PickImageFolder asks the user for a folder and scans it. It returns nil
// when nothing was chosen or the folder holds no images.
func (s *Service) PickImageFolder(ctx context.Context) ([]media.ImageDescriptor, error) {
	return call(ctx, s, "pick_image_folder", func() ([]media.ImageDescriptor, error) {
		dir, ok, err := s.picker.PickFolder(ctx)
		if err != nil || !ok {
			return nil, err
		}
		images, err := media.ScanFolder(dir)
		if err != nil {
			return nil, err
		}
		if len(images) == 0 {
			log.Info("No images found in %s", dir)
			return nil, nil
		}
		return images, nil
	})
}
