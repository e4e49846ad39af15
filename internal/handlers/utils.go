package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"image-browser/internal/errors"
	"image-browser/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding errors are logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONResponse writes v with a 200 status.
func writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, v)
}

// writeJSONError writes err as {"code": ..., "error": ...} with the
// status that matches its code. Errors without a code are reported as
// UNKNOWN with a 500.
func writeJSONError(w http.ResponseWriter, err error) {
	var e *errors.Error
	if !errors.As(err, &e) {
		e = &errors.Error{Code: errors.CodeUnknown, Message: err.Error()}
	}
	status := e.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error("%s: %v", e.Code, err)
	} else {
		log.Debug("%s: %v", e.Code, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"code": string(e.Code), "error": err.Error()})
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": status})
}

// requireQuery returns the named query parameter or an invalid-argument
// error when it is missing.
func requireQuery(r *http.Request, name string) (string, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return "", errors.InvalidArgument("missing required parameter: %s", name)
	}
	return value, nil
}

// intQuery parses an optional integer query parameter.
func intQuery(r *http.Request, name string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgument("invalid %s: %q", name, raw)
	}
	return n, nil
}
