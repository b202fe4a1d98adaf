package handler

import (
	"errors"
	"net/http"

	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/scheduling"
)

type availabilityRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Timezone  string `json:"timezone" validate:"required"`
}

// CreateAvailability declares a window the calling employee is available
// in. All acceptance rules live in the scheduling engine; this handler only
// shapes the request and the response.
func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	availability, err := h.availabilityValidator.Create(r.Context(), scheduling.IntervalInput{
		OwnerID:   myInfo.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
	})
	if err != nil {
		h.rejection(w, r, err)
		return
	}

	h.successResponse(w, r, "availability saved", availability)
}

// UpdateAvailability replaces the window loaded by the availabilityRecord
// middleware with new times, under the same validation as creation.
func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(AvailabilityCtxKey).(*domain.Availability)

	var req availabilityRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	availability, err := h.availabilityValidator.Update(r.Context(), record.ID, scheduling.IntervalInput{
		OwnerID:   record.OwnerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
	})
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			h.errorResponse(w, r, "availability not found")
			return
		}
		h.rejection(w, r, err)
		return
	}

	h.successResponse(w, r, "availability updated", availability)
}

// DeleteAvailability removes a window; the engine blocks the deletion while
// a shift still depends on it.
func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	record := r.Context().Value(AvailabilityCtxKey).(*domain.Availability)

	if err := h.availabilityValidator.Delete(r.Context(), record.ID); err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			h.errorResponse(w, r, "availability not found")
			return
		}
		h.rejection(w, r, err)
		return
	}

	h.successResponse(w, r, "availability deleted", nil)
}

func (h *Handler) GetMyAvailabilities(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	availabilities, err := h.repository.FindAvailabilitiesByOwner(r.Context(), myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availabilities fetched", availabilities)
}

// GetAllAvailabilities lists every window. With date, start and end query
// parameters it instead answers "who could take a shift at these times":
// only windows fully containing the requested range are returned.
func (h *Handler) GetAllAvailabilities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("date") != "" || q.Get("start") != "" || q.Get("end") != "" {
		tz := q.Get("timezone")
		if tz == "" {
			tz = "UTC"
		}

		covering, err := h.availabilityValidator.Covering(r.Context(), scheduling.IntervalInput{
			Date:      q.Get("date"),
			StartTime: q.Get("start"),
			EndTime:   q.Get("end"),
			Timezone:  tz,
		})
		if err != nil {
			h.rejection(w, r, err)
			return
		}

		h.successResponse(w, r, "covering availabilities fetched", covering)
		return
	}

	availabilities, err := h.repository.AllAvailabilities(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availabilities fetched", availabilities)
}
