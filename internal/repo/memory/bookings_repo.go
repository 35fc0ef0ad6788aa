package memory

import (
	"context"
	"sort"
	"sync"

	"eventbooking/internal/domain/booking"
)

type BookingsRepo struct {
	mu     sync.RWMutex
	items  map[string]booking.Booking
	events booking.EventChecker
}

func NewBookingsRepo(events booking.EventChecker) *BookingsRepo {
	return &BookingsRepo{
		items:  make(map[string]booking.Booking),
		events: events,
	}
}

func (r *BookingsRepo) Create(ctx context.Context, req booking.CreateBookingRequest) (booking.Booking, error) {
	email, err := booking.NormalizeEmail(req.Email)
	if err != nil {
		return booking.Booking{}, err
	}
	req.Email = email

	if err := booking.ValidateReference(ctx, r.events, req.EventID); err != nil {
		return booking.Booking{}, err
	}

	b := booking.NewFromCreateRequest(req)

	r.mu.Lock()
	r.items[b.ID] = b
	r.mu.Unlock()

	return b, nil
}

func (r *BookingsRepo) ListByEvent(ctx context.Context, eventID string) ([]booking.Booking, error) {
	r.mu.RLock()
	out := make([]booking.Booking, 0)
	for _, b := range r.items {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	r.mu.RUnlock()

	if len(out) == 0 {
		if err := booking.ValidateReference(ctx, r.events, eventID); err != nil {
			return nil, err
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, eventID, bookingID string) (booking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[bookingID]
	if !ok || b.EventID != eventID {
		return booking.Booking{}, booking.ErrNotFound
	}
	return b, nil
}

func (r *BookingsRepo) Delete(ctx context.Context, eventID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.items[bookingID]
	if !ok || b.EventID != eventID {
		return booking.ErrNotFound
	}

	delete(r.items, bookingID)
	return nil
}
