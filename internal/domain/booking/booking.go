package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidEmailShape = errors.New("invalid email shape")

	// The reference check keeps "the event is gone" and "we could not
	// find out" distinct so callers can tell a 404 from a storage fault.
	ErrEventReferenceNotFound    = errors.New("referenced event not found")
	ErrEventReferenceCheckFailed = errors.New("event reference check failed")
)

type CreateBookingRequest struct {
	EventID string `json:"-"`
	Email   string `json:"email" binding:"required"`
}

func NewFromCreateRequest(req CreateBookingRequest) Booking {
	now := time.Now().UTC()
	return Booking{
		ID:        uuid.NewString(),
		EventID:   req.EventID,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
