package handlers

import (
	"net/http"

	"image-browser/internal/startup"
)

// GetVersion returns the application version and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, startup.GetBuildInfo())
}
