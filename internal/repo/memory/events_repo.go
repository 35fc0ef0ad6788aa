package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventbooking/internal/domain/event"
)

// EventsRepo is an in-memory stand-in for the postgres repo. It runs the
// same pre-commit hooks, so tests and the DB-less dev mode see identical
// validation behavior.
type EventsRepo struct {
	mu    sync.RWMutex
	items map[string]event.Event
	slugs map[string]string // slug -> id
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		items: make(map[string]event.Event),
		slugs: make(map[string]string),
	}
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	e := event.NewFromCreateRequest(req)

	if err := event.Normalize(&e, event.Changes{IsNew: true}); err != nil {
		return event.Event{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.slugs[e.Slug]; taken {
		return event.Event{}, event.ErrSlugTaken
	}

	r.items[e.ID] = e
	r.slugs[e.Slug] = e.ID

	return e, nil
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	out := make([]event.Event, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	r.mu.RUnlock()

	// newest first, id as tie-breaker for a stable order
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return e, nil
}

func (r *EventsRepo) GetBySlug(ctx context.Context, slug string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slugs[slug]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return r.items[id], nil
}

func (r *EventsRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

func (r *EventsRepo) Update(ctx context.Context, id string, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	next, changes := event.ApplyUpdate(current, req)

	if err := event.Normalize(&next, changes); err != nil {
		return event.Event{}, err
	}

	if next.Slug != current.Slug {
		if owner, taken := r.slugs[next.Slug]; taken && owner != id {
			return event.Event{}, event.ErrSlugTaken
		}
		delete(r.slugs, current.Slug)
		r.slugs[next.Slug] = id
	}

	next.UpdatedAt = time.Now().UTC()
	r.items[id] = next

	return next, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return event.ErrNotFound
	}

	delete(r.items, id)
	delete(r.slugs, e.Slug)

	return nil
}
