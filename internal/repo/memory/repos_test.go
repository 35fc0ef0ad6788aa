package memory_test

import (
	"context"
	"errors"
	"testing"

	"eventbooking/internal/domain/booking"
	"eventbooking/internal/domain/event"
	"eventbooking/internal/repo/memory"
)

func createReq(title string) event.CreateEventRequest {
	return event.CreateEventRequest{
		Title:       title,
		Description: "desc",
		Overview:    "overview",
		Image:       "https://media.example.com/img.png",
		Venue:       "Hall A",
		Location:    "Berlin",
		Audience:    "Developers",
		Organizer:   "GoBerlin",
		Date:        "March 3, 2025",
		Time:        "9:05 PM",
		Mode:        "Offline",
		Agenda:      []string{"doors", "talks"},
		Tags:        []string{"go"},
	}
}

func TestEventsRepo_CreateNormalizes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEventsRepo()

	e, err := repo.Create(ctx, createReq("AI & Future: 2025!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Slug != "ai-future-2025" || e.Date != "2025-03-03" || e.Time != "21:05" {
		t.Fatalf("record not canonical: slug=%q date=%q time=%q", e.Slug, e.Date, e.Time)
	}

	got, err := repo.GetBySlug(ctx, "ai-future-2025")
	if err != nil || got.ID != e.ID {
		t.Fatalf("GetBySlug = (%+v, %v), want stored event", got, err)
	}
}

func TestEventsRepo_RejectedWriteLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEventsRepo()

	req := createReq("Broken Event")
	req.Agenda = nil

	_, err := repo.Create(ctx, req)
	if !errors.Is(err, event.ErrEmptySequenceField) {
		t.Fatalf("want ErrEmptySequenceField, got %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected write left %d record(s) in the store", len(all))
	}
}

func TestEventsRepo_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEventsRepo()

	if _, err := repo.Create(ctx, createReq("Go Meetup")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, createReq("Go! Meetup?"))
	if !errors.Is(err, event.ErrSlugTaken) {
		t.Fatalf("want ErrSlugTaken, got %v", err)
	}
}

func TestEventsRepo_UpdateRecomputesSlugOnTitleChange(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEventsRepo()

	e, err := repo.Create(ctx, createReq("Go Meetup"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := event.UpdateEventRequest{
		Title:       "Rust Meetup",
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Audience:    e.Audience,
		Organizer:   e.Organizer,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        string(e.Mode),
		Agenda:      e.Agenda,
		Tags:        e.Tags,
	}

	updated, err := repo.Update(ctx, e.ID, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Slug != "rust-meetup" {
		t.Fatalf("slug = %q, want %q", updated.Slug, "rust-meetup")
	}

	// the old slug must be released
	if _, err := repo.GetBySlug(ctx, "go-meetup"); !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("old slug still resolves: %v", err)
	}
}

func TestBookingsRepo_Create(t *testing.T) {
	ctx := context.Background()
	events := memory.NewEventsRepo()
	bookings := memory.NewBookingsRepo(events)

	e, err := events.Create(ctx, createReq("Go Meetup"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("success_normalizes_email", func(t *testing.T) {
		b, err := bookings.Create(ctx, booking.CreateBookingRequest{
			EventID: e.ID,
			Email:   "  Jane.Doe@Example.COM ",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Email != "jane.doe@example.com" {
			t.Fatalf("stored email = %q, want lowercased/trimmed", b.Email)
		}
	})

	t.Run("unknown_event", func(t *testing.T) {
		_, err := bookings.Create(ctx, booking.CreateBookingRequest{
			EventID: "7c0e3c8e-0000-0000-0000-000000000000",
			Email:   "sam@mail.dev",
		})
		if !errors.Is(err, booking.ErrEventReferenceNotFound) {
			t.Fatalf("want ErrEventReferenceNotFound, got %v", err)
		}
	})

	t.Run("bad_email", func(t *testing.T) {
		_, err := bookings.Create(ctx, booking.CreateBookingRequest{
			EventID: e.ID,
			Email:   "not-an-email",
		})
		if !errors.Is(err, booking.ErrInvalidEmailShape) {
			t.Fatalf("want ErrInvalidEmailShape, got %v", err)
		}
	})
}

func TestBookingsRepo_ListByEventMissingEvent(t *testing.T) {
	ctx := context.Background()
	bookings := memory.NewBookingsRepo(memory.NewEventsRepo())

	_, err := bookings.ListByEvent(ctx, "missing-id")
	if !errors.Is(err, booking.ErrEventReferenceNotFound) {
		t.Fatalf("want ErrEventReferenceNotFound, got %v", err)
	}
}
