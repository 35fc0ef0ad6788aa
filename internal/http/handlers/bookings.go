package handlers

import (
	"context"
	"net/http"
	"time"

	"eventbooking/internal/config"
	"eventbooking/internal/domain/booking"
	"github.com/gin-gonic/gin"
)

type BookingsStore interface {
	Create(ctx context.Context, req booking.CreateBookingRequest) (booking.Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]booking.Booking, error)
	GetByID(ctx context.Context, eventID, bookingID string) (booking.Booking, error)
	Delete(ctx context.Context, eventID, bookingID string) error
}

type BookingsHandler struct {
	repo BookingsStore
}

func NewBookingsHandler(repo BookingsStore) *BookingsHandler {
	return &BookingsHandler{repo: repo}
}

func (h *BookingsHandler) CreateBooking(ctx *gin.Context) {
	eventID := ctx.Param("id")

	if !isUUID(eventID) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	var req booking.CreateBookingRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// the URL param is the source of truth for the event reference
	req.EventID = eventID

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err := h.repo.Create(cctx, req)

	if err != nil {
		// a failed reference lookup is a storage fault, not a missing event
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not create booking")
		}
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

func (h *BookingsHandler) ListBookings(ctx *gin.Context) {
	eventID := ctx.Param("id")

	if !isUUID(eventID) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	bookings, err := h.repo.ListByEvent(cctx, eventID)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not list bookings")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"eventId":  eventID,
		"count":    len(bookings),
		"bookings": bookings,
	})
}

func (h *BookingsHandler) GetBooking(ctx *gin.Context) {
	eventID := ctx.Param("id")
	bookingID := ctx.Param("bookingId")

	if !isUUID(eventID) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	if !isUUID(bookingID) {
		RespondBadRequest(ctx, "invalid_id", "booking id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	b, err := h.repo.GetByID(cctx, eventID, bookingID)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not fetch booking")
		}
		return
	}

	ctx.JSON(http.StatusOK, b)
}

func (h *BookingsHandler) CancelBooking(ctx *gin.Context) {
	eventID := ctx.Param("id")
	bookingID := ctx.Param("bookingId")

	if !isUUID(eventID) {
		RespondBadRequest(ctx, "invalid_id", "event id must be a valid UUID", nil)
		return
	}

	if !isUUID(bookingID) {
		RespondBadRequest(ctx, "invalid_id", "booking id must be a valid UUID", nil)
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, eventID, bookingID)

	if err != nil {
		if !RespondDomainError(ctx, err) {
			RespondInternal(ctx, "Could not cancel booking")
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
