package postgres

import (
	"context"
	"errors"

	"eventbooking/internal/domain/booking"
	"eventbooking/internal/observability"
	"github.com/jackc/pgx/v5"
)

type BookingsRepo struct {
	db     Querier
	events booking.EventChecker
	prom   *observability.Prom
}

func NewBookingsRepo(db Querier, events booking.EventChecker, prom *observability.Prom) *BookingsRepo {
	return &BookingsRepo{
		db:     db,
		events: events,
		prom:   prom,
	}
}

func (r *BookingsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create normalizes the email and confirms the referenced event exists
// before anything is written. The reference check is advisory: a concurrent
// event deletion can still slip between check and insert.
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

	err = r.observe("bookings.create", func() error {
		_, execErr := r.db.Exec(ctx, `
			INSERT INTO bookings (id, event_id, email, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5)
		`, b.ID, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt)
		return execErr
	})
	if err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

func (r *BookingsRepo) ListByEvent(ctx context.Context, eventID string) ([]booking.Booking, error) {
	var rows pgx.Rows

	err := r.observe("bookings.list_by_event", func() error {
		var qerr error
		rows, qerr = r.db.Query(ctx, `
			SELECT id, event_id, email, created_at, updated_at
			FROM bookings
			WHERE event_id = $1
			ORDER BY created_at DESC, id DESC
		`, eventID)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]booking.Booking, 0)
	for rows.Next() {
		var b booking.Booking
		if scanErr := rows.Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, b)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	if len(out) == 0 {
		// distinguish "no bookings yet" from "no such event"
		if err := booking.ValidateReference(ctx, r.events, eventID); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *BookingsRepo) GetByID(ctx context.Context, eventID, bookingID string) (booking.Booking, error) {
	var b booking.Booking
	err := r.observe("bookings.get_by_id", func() error {
		return r.db.QueryRow(ctx, `
			SELECT id, event_id, email, created_at, updated_at
			FROM bookings
			WHERE id = $1 AND event_id = $2
		`, bookingID, eventID).Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrNotFound
		}
		return booking.Booking{}, err
	}

	return b, nil
}

func (r *BookingsRepo) Delete(ctx context.Context, eventID, bookingID string) error {
	return r.observe("bookings.delete", func() error {
		tag, err := r.db.Exec(ctx,
			`DELETE FROM bookings WHERE id = $1 AND event_id = $2`, bookingID, eventID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return booking.ErrNotFound
		}
		return nil
	})
}
