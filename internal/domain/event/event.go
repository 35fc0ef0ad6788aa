package event

import (
	"errors"
	"time"
)

// Mode is where an event takes place. Stored lowercased.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Date        string    `json:"date"` // canonical YYYY-MM-DD
	Time        string    `json:"time"` // canonical 24h HH:MM
	Mode        Mode      `json:"mode"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrNotFound  = errors.New("event not found")
	ErrSlugTaken = errors.New("event slug already exists")

	// Normalization failures. Wrapped with the offending field/value,
	// match with errors.Is.
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrEmptySequenceField   = errors.New("empty sequence field")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrInvalidTimeFormat    = errors.New("invalid time format")
	ErrEmptySlug            = errors.New("title normalizes to an empty slug")
)

// CreateEventRequest arrives as a multipart form; the image URL is filled
// in by the handler after the media upload succeeds.
type CreateEventRequest struct {
	Title       string   `form:"title" json:"title"`
	Description string   `form:"description" json:"description"`
	Overview    string   `form:"overview" json:"overview"`
	Image       string   `form:"-" json:"image"`
	Venue       string   `form:"venue" json:"venue"`
	Location    string   `form:"location" json:"location"`
	Audience    string   `form:"audience" json:"audience"`
	Organizer   string   `form:"organizer" json:"organizer"`
	Date        string   `form:"date" json:"date"`
	Time        string   `form:"time" json:"time"`
	Mode        string   `form:"mode" json:"mode"`
	Agenda      []string `form:"agenda" json:"agenda"`
	Tags        []string `form:"tags" json:"tags"`
}

// a full update payload; every field is replaced and the pre-commit hooks
// run again against the stored row.
type UpdateEventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Overview    string   `json:"overview" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Venue       string   `json:"venue" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Audience    string   `json:"audience" binding:"required"`
	Organizer   string   `json:"organizer" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Mode        string   `json:"mode" binding:"required"`
	Agenda      []string `json:"agenda" binding:"required"`
	Tags        []string `json:"tags" binding:"required"`
}
