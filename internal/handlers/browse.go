package handlers

import (
	"encoding/json"
	"net/http"

	"image-browser/internal/errors"
)

// AdjacentImages lists the images next to ?path=, including the file itself.
func (h *Handlers) AdjacentImages(w http.ResponseWriter, r *http.Request) {
	path, err := requireQuery(r, "path")
	if err != nil {
		writeJSONError(w, err)
		return
	}

	images, err := h.commands.AdjacentImages(r.Context(), path)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, images)
}

// ScanFolder lists the images directly inside ?path=.
func (h *Handlers) ScanFolder(w http.ResponseWriter, r *http.Request) {
	path, err := requireQuery(r, "path")
	if err != nil {
		writeJSONError(w, err)
		return
	}

	images, err := h.commands.ScanFolder(r.Context(), path)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, images)
}

// ListDirTree returns the tree under ?path= expanded to ?depth= levels.
func (h *Handlers) ListDirTree(w http.ResponseWriter, r *http.Request) {
	path, err := requireQuery(r, "path")
	if err != nil {
		writeJSONError(w, err)
		return
	}
	depth, err := intQuery(r, "depth", h.treeDepth)
	if err != nil {
		writeJSONError(w, err)
		return
	}

	tree, err := h.commands.ListDirTree(r.Context(), path, depth)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, tree)
}

// StartWatchRequest is the body of POST /api/watch.
type StartWatchRequest struct {
	RootPath string `json:"rootPath"`
}

// StartWatchResponse reports the root now being watched.
type StartWatchResponse struct {
	Status   string `json:"status"`
	RootPath string `json:"rootPath"`
}

// StartWatch replaces the current watch with one on the requested root.
func (h *Handlers) StartWatch(w http.ResponseWriter, r *http.Request) {
	var req StartWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, errors.InvalidArgument("invalid request body: %v", err))
		return
	}
	if req.RootPath == "" {
		writeJSONError(w, errors.InvalidArgument("missing required field: rootPath"))
		return
	}

	if err := h.commands.StartWatch(r.Context(), req.RootPath); err != nil {
		writeJSONError(w, err)
		return
	}

	root := req.RootPath
	if h.watch != nil {
		root = h.watch.Root()
	}
	writeJSONResponse(w, StartWatchResponse{Status: "watching", RootPath: root})
}

// ImageMetadata returns the dimensions, size and format of ?path=.
func (h *Handlers) ImageMetadata(w http.ResponseWriter, r *http.Request) {
	path, err := requireQuery(r, "path")
	if err != nil {
		writeJSONError(w, err)
		return
	}

	meta, err := h.commands.ImageMetadata(r.Context(), path)
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, meta)
}

// Thumbnail writes a JPEG of ?path= scaled to fit a ?size= box.
func (h *Handlers) Thumbnail(w http.ResponseWriter, r *http.Request) {
	path, err := requireQuery(r, "path")
	if err != nil {
		writeJSONError(w, err)
		return
	}
	size, err := intQuery(r, "size", h.thumbnailSize)
	if err != nil {
		writeJSONError(w, err)
		return
	}

	data, err := h.commands.Thumbnail(r.Context(), path, size)
	if err != nil {
		writeJSONError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		log.Debug("thumbnail write for %s: %v", path, err)
	}
}

// PickImageFile runs the host picker for a single image. The body is
// null when nothing was chosen.
func (h *Handlers) PickImageFile(w http.ResponseWriter, r *http.Request) {
	image, err := h.commands.PickImageFile(r.Context())
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, image)
}

// PickImageFolder runs the host picker for a folder and returns its
// images, or null when nothing was chosen or the folder has none.
func (h *Handlers) PickImageFolder(w http.ResponseWriter, r *http.Request) {
	images, err := h.commands.PickImageFolder(r.Context())
	if err != nil {
		writeJSONError(w, err)
		return
	}
	writeJSONResponse(w, images)
}

// Events streams change notifications as Server-Sent Events.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	h.events.ServeHTTP(w, r)
}
