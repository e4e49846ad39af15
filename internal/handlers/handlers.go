package handlers

import (
	"net/http"
	"time"

	"image-browser/internal/commands"
	"image-browser/internal/events"
	"image-browser/internal/logging"
)

var log = logging.Named("http")

// WatchState reports the state of the directory watch.
type WatchState interface {
	Root() string
	Watching() bool
	WatchedDirectories() int
	Poisoned() bool
}

// Config holds the request defaults.
type Config struct {
	// TreeDepth is used when a tree request omits depth.
	TreeDepth int
	// ThumbnailSize is used when a thumbnail request omits size.
	ThumbnailSize int
}

type Handlers struct {
	commands      *commands.Service
	watch         WatchState
	hub           *events.Hub
	events        http.Handler
	treeDepth     int
	thumbnailSize int
	startTime     time.Time
}

func New(svc *commands.Service, watch WatchState, hub *events.Hub, config Config) *Handlers {
	if config.TreeDepth < 0 {
		config.TreeDepth = 1
	}
	return &Handlers{
		commands:      svc,
		watch:         watch,
		hub:           hub,
		events:        events.NewHandler(hub),
		treeDepth:     config.TreeDepth,
		thumbnailSize: config.ThumbnailSize,
		startTime:     time.Now(),
	}
}
