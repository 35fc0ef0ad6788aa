package handlers

import (
	"errors"

	"eventbooking/internal/domain/booking"
	"eventbooking/internal/domain/event"
	"github.com/gin-gonic/gin"
)

// RespondDomainError maps a pre-commit hook failure onto a response. Every
// error kind keeps its own code so clients never have to parse message text.
// Returns false when the error was not a domain error.
func RespondDomainError(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, event.ErrMissingRequiredField):
		RespondBadRequest(ctx, "missing_required_field", err.Error(), nil)
	case errors.Is(err, event.ErrInvalidEnumValue):
		RespondBadRequest(ctx, "invalid_enum_value", err.Error(), nil)
	case errors.Is(err, event.ErrEmptySequenceField):
		RespondBadRequest(ctx, "empty_sequence_field", err.Error(), nil)
	case errors.Is(err, event.ErrInvalidDateFormat):
		RespondBadRequest(ctx, "invalid_date_format", err.Error(), nil)
	case errors.Is(err, event.ErrInvalidTimeFormat):
		RespondBadRequest(ctx, "invalid_time_format", err.Error(), nil)
	case errors.Is(err, event.ErrEmptySlug):
		RespondBadRequest(ctx, "empty_slug", err.Error(), nil)
	case errors.Is(err, event.ErrSlugTaken):
		RespondConflict(ctx, "slug_taken", "an event with this title already exists")
	case errors.Is(err, event.ErrNotFound):
		RespondNotFound(ctx, "Event not found")
	case errors.Is(err, booking.ErrInvalidEmailShape):
		RespondBadRequest(ctx, "invalid_email_shape", err.Error(), nil)
	case errors.Is(err, booking.ErrEventReferenceNotFound):
		RespondNotFound(ctx, "Event not found")
	case errors.Is(err, booking.ErrNotFound):
		RespondNotFound(ctx, "Booking not found")
	default:
		return false
	}

	return true
}
