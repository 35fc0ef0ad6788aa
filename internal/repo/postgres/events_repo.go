package postgres

import (
	"context"
	"errors"
	"time"

	"eventbooking/internal/domain/event"
	"eventbooking/internal/observability"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, slug, description, overview, image, venue, location,
	audience, organizer, date, "time", mode, agenda, tags, created_at, updated_at`

type EventsRepo struct {
	db   Querier
	prom *observability.Prom
}

func NewEventsRepo(db Querier, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		db:   db,
		prom: prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create runs the normalization hook against the candidate record and only
// inserts when it passes. A hook failure is the write's outcome and nothing
// reaches the database.
func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	if err := event.Normalize(&e, event.Changes{IsNew: true}); err != nil {
		return event.Event{}, err
	}

	err := r.observe("events.create", func() error {
		_, execErr := r.db.Exec(ctx, `
			INSERT INTO events (`+eventColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		`,
			e.ID, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue,
			e.Location, e.Audience, e.Organizer, e.Date, e.Time, e.Mode,
			e.Agenda, e.Tags, e.CreatedAt, e.UpdatedAt,
		)
		return execErr
	})

	if err != nil {
		if IsUniqueViolation(err, "events_slug_uniq") {
			return event.Event{}, event.ErrSlugTaken
		}
		return event.Event{}, err
	}

	return e, nil
}

// List returns every event, newest first.
func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	var rows pgx.Rows

	err := r.observe("events.list", func() error {
		var qerr error
		rows, qerr = r.db.Query(ctx, `
			SELECT `+eventColumns+`
			FROM events
			ORDER BY created_at DESC, id DESC
		`)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.Event, 0)
	for rows.Next() {
		e, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, e)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event
	err := r.observe("events.get_by_id", func() error {
		var scanErr error
		e, scanErr = scanEvent(r.db.QueryRow(ctx, `
			SELECT `+eventColumns+`
			FROM events
			WHERE id = $1
		`, id))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

func (r *EventsRepo) GetBySlug(ctx context.Context, slug string) (event.Event, error) {
	var e event.Event
	err := r.observe("events.get_by_slug", func() error {
		var scanErr error
		e, scanErr = scanEvent(r.db.QueryRow(ctx, `
			SELECT `+eventColumns+`
			FROM events
			WHERE slug = $1
		`, slug))
		return scanErr
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	return e, nil
}

// Exists backs the booking reference check.
func (r *EventsRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.observe("events.exists", func() error {
		return r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id,
		).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update is a whole-document update: the stored row is loaded first so the
// hook can see which fields actually changed, then the normalized result
// replaces the row.
func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return event.Event{}, err
	}

	next, changes := event.ApplyUpdate(current, req)

	if err := event.Normalize(&next, changes); err != nil {
		return event.Event{}, err
	}

	next.UpdatedAt = time.Now().UTC()

	err = r.observe("events.update", func() error {
		tag, execErr := r.db.Exec(ctx, `
			UPDATE events
			SET title = $2, slug = $3, description = $4, overview = $5,
				image = $6, venue = $7, location = $8, audience = $9,
				organizer = $10, date = $11, "time" = $12, mode = $13,
				agenda = $14, tags = $15, updated_at = $16
			WHERE id = $1
		`,
			id, next.Title, next.Slug, next.Description, next.Overview,
			next.Image, next.Venue, next.Location, next.Audience,
			next.Organizer, next.Date, next.Time, next.Mode,
			next.Agenda, next.Tags, next.UpdatedAt,
		)
		if execErr != nil {
			return execErr
		}
		if tag.RowsAffected() == 0 {
			return event.ErrNotFound
		}
		return nil
	})

	if err != nil {
		if IsUniqueViolation(err, "events_slug_uniq") {
			return event.Event{}, event.ErrSlugTaken
		}
		return event.Event{}, err
	}

	return next, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("events.delete", func() error {
		tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return event.ErrNotFound
		}
		return nil
	})
}

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image,
		&e.Venue, &e.Location, &e.Audience, &e.Organizer, &e.Date, &e.Time,
		&e.Mode, &e.Agenda, &e.Tags, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
