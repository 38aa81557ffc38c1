package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/core"
	"crafting-catalogue/internal/logging"
	"crafting-catalogue/internal/store"
	"crafting-catalogue/internal/web/templates"
)

// respondError maps err to a user-facing message and writes it in the shape
// the client asked for: an HTMX alert fragment, a JSON body, or plain text.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request failed",
		"path", r.URL.Path,
		"status", status,
		"code", msg.Code,
		"error", err,
	)

	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		// Retarget so the alert lands in the notice area regardless of
		// which element triggered the request.
		w.Header().Set("HX-Retarget", "#notice")
		w.Header().Set("HX-Reswap", "innerHTML")
		w.WriteHeader(status)
		_ = templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)

	case wantsJSON(r):
		writeJSON(w, status, map[string]string{
			"error":  msg.Message,
			"action": msg.Action,
			"code":   msg.Code,
		})

	default:
		http.Error(w, msg.Message+". "+msg.Action+" ("+msg.Code+")", status)
	}
}

// statusFor picks the HTTP status from the error class.
func statusFor(err error) int {
	var verr catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case isInputError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// isInputError reports whether the error came from the request payload
// rather than from storage.
func isInputError(err error) bool {
	text := err.Error()
	for _, marker := range []string{
		"unsupported file type",
		"unsupported format",
		"unknown report kind",
		"missing required column",
		"file has no rows",
		"reading csv",
		"reading workbook",
		"no sheets",
		"invalid id",
		"invalid request body",
		"request body too large",
	} {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeJSON encodes v to the response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
