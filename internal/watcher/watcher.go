package watcher

import (
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"image-browser/internal/filesystem"
	"image-browser/internal/logging"
	"image-browser/internal/metrics"
)

var log = logging.Named("watcher")

// ChangeEvent is the payload delivered for one filesystem notification.
type ChangeEvent struct {
	Paths []string `json:"paths"`
	Kind  string   `json:"kind"`
}

// Sink receives change events. Deliver must not block; it returns false
// when the event was dropped.
type Sink interface {
	Deliver(ChangeEvent) bool
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ChangeEvent) bool

// Deliver calls f(ev).
func (f SinkFunc) Deliver(ev ChangeEvent) bool {
	return f(ev)
}

// Event kinds.
const (
	KindCreate  = "create"
	KindWrite   = "write"
	KindRemove  = "remove"
	KindRename  = "rename"
	KindChmod   = "chmod"
	KindUnknown = "unknown"
)

// eventKind maps an fsnotify op to a kind. When several bits are set the
// first match in create, write, remove, rename, chmod order wins.
func eventKind(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return KindCreate
	case op.Has(fsnotify.Write):
		return KindWrite
	case op.Has(fsnotify.Remove):
		return KindRemove
	case op.Has(fsnotify.Rename):
		return KindRename
	case op.Has(fsnotify.Chmod):
		return KindChmod
	default:
		return KindUnknown
	}
}

// normalize turns one fsnotify event into one ChangeEvent. It does no I/O.
func normalize(event fsnotify.Event) ChangeEvent {
	return ChangeEvent{
		Paths: []string{event.Name},
		Kind:  eventKind(event.Op),
	}
}

// subscription is one live fsnotify watcher covering a root and every
// directory below it, plus the goroutine forwarding its events.
type subscription struct {
	root string
	fsw  *fsnotify.Watcher
	sink Sink
	done chan struct{}
}

// newSubscription registers root and its descendants and starts forwarding.
// Failing to watch root itself is an error; failing on a subdirectory is
// logged and that subtree is skipped.
func newSubscription(root string, sink Sink) (*subscription, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &subscription{
		root: root,
		fsw:  fsw,
		sink: sink,
		done: make(chan struct{}),
	}

	if err := s.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	log.Debug("watching %d directories under %s", s.directories(), root)

	go s.run()
	return s, nil
}

// addRecursive adds dir and all directories below it.
func (s *subscription) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Warn("skipping unreadable directory %s: %v", path, err)
			metrics.WatcherErrors.Inc()
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if addErr := s.fsw.Add(path); addErr != nil {
			if path == dir {
				return addErr
			}
			log.Warn("failed to add path to watcher %s: %v", path, addErr)
			metrics.WatcherErrors.Inc()
			return filepath.SkipDir
		}
		return nil
	})
}

func (s *subscription) run() {
	defer close(s.done)

	for {
		select {
		case event, ok := <-s.fsw.Events:
			if !ok {
				return
			}
			s.handle(event)

		case err, ok := <-s.fsw.Errors:
			if !ok {
				return
			}
			log.Error("watcher error under %s: %v", s.root, err)
			metrics.WatcherErrors.Inc()
		}
	}
}

func (s *subscription) handle(event fsnotify.Event) {
	ev := normalize(event)
	metrics.WatcherEventsTotal.WithLabelValues(ev.Kind).Inc()

	if !s.sink.Deliver(ev) {
		metrics.WatcherEventsDropped.Inc()
	}

	// New directories (including mkdir -p chains) must be registered so
	// their future children are reported too.
	if event.Has(fsnotify.Create) {
		info, err := filesystem.Stat(event.Name)
		if err != nil || !info.IsDir() {
			return
		}
		if err := s.addRecursive(event.Name); err != nil {
			log.Warn("failed to add new directory to watcher %s: %v", event.Name, err)
			metrics.WatcherErrors.Inc()
			return
		}
		log.Debug("added new directory to watcher: %s", event.Name)
	}
}

// directories returns how many directories the OS watch currently covers.
// Removed directories drop out on their own.
func (s *subscription) directories() int {
	return len(s.fsw.WatchList())
}

// close releases the OS watch and waits for the forwarding goroutine to
// exit. No event is delivered after close returns.
func (s *subscription) close() {
	if err := s.fsw.Close(); err != nil {
		log.Error("failed to close file watcher for %s: %v", s.root, err)
	}
	<-s.done
}
