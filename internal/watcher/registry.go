package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"image-browser/internal/errors"
	"image-browser/internal/filesystem"
	"image-browser/internal/metrics"
)

// Registry holds at most one active subscription. Starting a new watch
// replaces the previous one; there is no separate stop other than Close at
// shutdown.
type Registry struct {
	sink Sink

	mu       sync.Mutex
	current  *subscription
	poisoned bool

	// beforeSwap runs with the lock held just before the slot is replaced.
	beforeSwap func()
}

// NewRegistry creates an empty registry delivering events to sink.
func NewRegistry(sink Sink) *Registry {
	return &Registry{sink: sink}
}

// Start watches root and every directory under it, present and future,
// replacing any previous watch.
//
// The new subscription is fully established before the old one is touched,
// so a failure leaves the previous watch running. Once Start returns, no
// event from the previous root will be delivered.
func (r *Registry) Start(root string) error {
	abs, err := validateRoot(root)
	if err != nil {
		metrics.WatcherStartsTotal.WithLabelValues("error").Inc()
		return err
	}

	sub, err := newSubscription(abs, r.sink)
	if err != nil {
		metrics.WatcherStartsTotal.WithLabelValues("error").Inc()
		metrics.WatcherErrors.Inc()
		return errors.Watch(err, "failed to watch %s", abs)
	}

	replaced, err := r.swap(sub)
	if err != nil {
		metrics.WatcherStartsTotal.WithLabelValues("error").Inc()
		return err
	}

	if replaced != "" {
		log.Info("Watch moved from %s to %s (%d directories)", replaced, abs, sub.directories())
		metrics.WatcherStartsTotal.WithLabelValues("replaced").Inc()
	} else {
		log.Info("Watch started on %s (%d directories)", abs, sub.directories())
		metrics.WatcherStartsTotal.WithLabelValues("started").Inc()
	}
	return nil
}

// swap installs sub and tears down the previous subscription under the
// lock. It returns the previous root, if any.
//
// A panic while the lock is held marks the registry poisoned, clears the
// slot and is returned as a WATCH_ERROR. The next call clears the flag.
func (r *Registry) swap(sub *subscription) (previous string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			r.poisoned = true
			stale := r.current
			r.current = nil
			sub.close()
			if stale != nil && stale != sub {
				stale.close()
			}
			metrics.WatcherErrors.Inc()
			log.Error("watch registry poisoned while replacing subscription: %v", p)
			previous, err = "", errors.Watch(nil, "watch registry lock poisoned: %v", p)
		}
	}()

	if r.poisoned {
		log.Warn("recovering watch registry after an earlier failure")
		r.poisoned = false
	}

	if r.beforeSwap != nil {
		r.beforeSwap()
	}

	old := r.current
	r.current = sub
	if old != nil {
		previous = old.root
		old.close()
	}
	return previous, nil
}

// validateRoot checks root is an existing directory and returns its
// absolute path, so every delivered path is absolute.
func validateRoot(root string) (string, error) {
	if root == "" {
		return "", errors.InvalidArgument("root path is required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.InvalidArgument("invalid root path %s: %v", root, err)
	}

	info, err := filesystem.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound("path does not exist: %s", root)
		}
		return "", errors.Watch(err, "failed to access %s", root)
	}
	if !info.IsDir() {
		return "", errors.InvalidArgument("path is not a directory: %s", root)
	}
	return abs, nil
}

// Root returns the currently watched root, or "" when nothing is watched.
// It is for diagnostics only.
func (r *Registry) Root() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return ""
	}
	return r.current.root
}

// Watching reports whether a subscription is active.
func (r *Registry) Watching() bool {
	return r.Root() != ""
}

// WatchedDirectories returns how many directories the active subscription
// covers.
func (r *Registry) WatchedDirectories() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return 0
	}
	return r.current.directories()
}

// Poisoned reports whether the last replacement failed mid-way.
func (r *Registry) Poisoned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.poisoned
}

// Close releases the active subscription. It is meant for process
// shutdown; a later Start works normally.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil {
		log.Debug("closing watch on %s", r.current.root)
		r.current.close()
		r.current = nil
	}
	return nil
}
