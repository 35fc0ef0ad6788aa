package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateEventRequest) Event {
	now := time.Now().UTC()

	return Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Audience:    req.Audience,
		Organizer:   req.Organizer,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        Mode(req.Mode),
		Agenda:      req.Agenda,
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyUpdate replaces the mutable fields of a stored event with the update
// payload and reports which hook-relevant fields actually changed. The slug
// and timestamps are left alone; Normalize recomputes the slug when the
// title moved and the repo stamps updatedAt.
func ApplyUpdate(current Event, req UpdateEventRequest) (Event, Changes) {
	ch := Changes{
		Title: strings.TrimSpace(req.Title) != current.Title,
		Date:  strings.TrimSpace(req.Date) != current.Date,
		Time:  strings.TrimSpace(req.Time) != current.Time,
	}

	next := current
	next.Title = req.Title
	next.Description = req.Description
	next.Overview = req.Overview
	next.Image = req.Image
	next.Venue = req.Venue
	next.Location = req.Location
	next.Audience = req.Audience
	next.Organizer = req.Organizer
	next.Date = req.Date
	next.Time = req.Time
	next.Mode = Mode(req.Mode)
	next.Agenda = req.Agenda
	next.Tags = req.Tags

	return next, ch
}
