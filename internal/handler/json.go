package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shift-planner/backend/internal/scheduling"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorKind string `json:"errorKind,omitempty"`
	Data      any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

// rejection maps a validation outcome from the scheduling engine onto the
// response envelope: the kind travels in errorKind so clients can branch on
// it without parsing the message. StoreUnavailable alone is a server-side
// condition and is logged and reported as such.
func (h *Handler) rejection(w http.ResponseWriter, r *http.Request, err error) {
	kind := scheduling.KindOf(err)
	switch kind {
	case "":
		h.internalServerError(w, r, err)
	case scheduling.KindStoreUnavailable:
		h.logInternalServerError(r, err)
		h.writeJSON(w, r, http.StatusServiceUnavailable, Response{
			Success:   false,
			Message:   "scheduling store unavailable, try again later",
			ErrorKind: string(kind),
			Data:      nil,
		})
	default:
		h.writeJSON(w, r, http.StatusOK, Response{
			Success:   false,
			Message:   err.Error(),
			ErrorKind: string(kind),
			Data:      nil,
		})
	}
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}
