package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/scheduling"
)

// CreateShift assigns a shift to an employee. The shift times are read in
// the given timezone, or UTC when the request carries none. On success the
// employee is notified by email through the mail queue.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID   int64  `json:"ownerID" validate:"required"`
		Date      string `json:"date" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		Timezone  string `json:"timezone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	owner, err := h.repository.GetUserByID(req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift, err := h.shiftValidator.Create(r.Context(), scheduling.IntervalInput{
		OwnerID:   owner.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
	})
	if err != nil {
		h.rejection(w, r, err)
		return
	}

	h.notifyShiftAssigned(owner, shift)

	h.successResponse(w, r, "shift created", shift)
}

// notifyShiftAssigned queues the assignment email. Delivery is best effort:
// a queue failure is logged, the shift stays assigned.
func (h *Handler) notifyShiftAssigned(owner *domain.User, shift *domain.Shift) {
	mailMessage := domain.MailMessage{
		Type: "shift_assigned",
		To:   owner.Email,
		Data: domain.ShiftAssignedMailData{
			FullName: owner.FullName,
			Date:     shift.Date,
			Span:     shift.Span(),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("failed to marshal shift notification", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("failed to queue shift notification", "error", err)
	}
}

// DeleteShift removes a shift. There is no shift edit; admins correct a
// shift by deleting and re-creating it.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid shift ID")
		return
	}

	if err := h.shiftValidator.Delete(r.Context(), id); err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			h.errorResponse(w, r, "shift not found")
			return
		}
		h.rejection(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	shifts, err := h.repository.FindShiftsByOwner(r.Context(), myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) GetAllShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.repository.AllShifts(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}
