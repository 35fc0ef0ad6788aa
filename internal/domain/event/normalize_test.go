package event

import (
	"errors"
	"testing"
)

func validEvent() Event {
	return Event{
		Title:       "AI & Future: 2025!",
		Description: "A day of talks",
		Overview:    "Where AI is heading",
		Image:       "https://media.example.com/events/ai.png",
		Venue:       "Main Hall",
		Location:    "Toronto",
		Audience:    "Engineers",
		Organizer:   "Tech Society",
		Date:        "March 3, 2025",
		Time:        "9:05 PM",
		Mode:        "Online",
		Agenda:      []string{"Opening", "Keynote"},
		Tags:        []string{"ai", "future"},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation_stripped", "AI & Future: 2025!", "ai-future-2025"},
		{"whitespace_collapsed", "  Go   Meetup  ", "go-meetup"},
		{"underscore_kept", "release_notes review", "release_notes-review"},
		{"already_clean", "spring gala", "spring-gala"},
		{"only_punctuation", "!!! ???", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}

			// deterministic: a second derivation must agree
			if again := Slugify(tt.title); again != got {
				t.Fatalf("Slugify not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"textual", "March 3, 2025", "2025-03-03", false},
		{"already_canonical", "2025-03-03", "2025-03-03", false},
		{"slash_numeric", "2025/03/03", "2025-03-03", false},
		{"with_time_of_day", "2025-03-03T18:30:00Z", "2025-03-03", false},
		{"garbage", "not-a-date", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalDate(tt.in)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("want ErrInvalidDateFormat, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanonicalDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalDate_Idempotent(t *testing.T) {
	once, err := CanonicalDate("Apr 7 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	twice, err := CanonicalDate(once)
	if err != nil {
		t.Fatalf("unexpected error on canonical input: %v", err)
	}

	if once != twice {
		t.Fatalf("canonicalization not idempotent: %q then %q", once, twice)
	}
}

func TestCanonicalTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"evening_12h", "9:05 PM", "21:05", false},
		{"midnight_12h", "12:00 AM", "00:00", false},
		{"noon_12h", "12:00 PM", "12:00", false},
		{"lowercase_suffix_no_space", "7:30pm", "19:30", false},
		{"morning_12h", "9:05 AM", "09:05", false},
		{"padded_24h", "09:05", "09:05", false},
		{"unpadded_24h", "9:05", "09:05", false},
		{"late_24h", "23:59", "23:59", false},
		{"single_digit_minute", "9:5", "", true},
		{"hour_out_of_range", "24:00", "", true},
		{"minute_out_of_range", "10:60", "", true},
		{"zero_hour_12h", "0:30 PM", "", true},
		{"garbage", "noonish", "", true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalTime(tt.in)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Fatalf("want ErrInvalidTimeFormat, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CanonicalTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Create(t *testing.T) {
	e := validEvent()

	err := Normalize(&e, Changes{IsNew: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Slug != "ai-future-2025" {
		t.Fatalf("slug = %q, want %q", e.Slug, "ai-future-2025")
	}
	if e.Date != "2025-03-03" {
		t.Fatalf("date = %q, want %q", e.Date, "2025-03-03")
	}
	if e.Time != "21:05" {
		t.Fatalf("time = %q, want %q", e.Time, "21:05")
	}
	if e.Mode != ModeOnline {
		t.Fatalf("mode = %q, want %q", e.Mode, ModeOnline)
	}
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Event)
		wantErr error
	}{
		{"missing_title", func(e *Event) { e.Title = "   " }, ErrMissingRequiredField},
		{"missing_venue", func(e *Event) { e.Venue = "" }, ErrMissingRequiredField},
		{"unknown_mode", func(e *Event) { e.Mode = "virtual" }, ErrInvalidEnumValue},
		{"empty_agenda", func(e *Event) { e.Agenda = nil }, ErrEmptySequenceField},
		{"blank_tags", func(e *Event) { e.Tags = []string{"  ", ""} }, ErrEmptySequenceField},
		{"bad_date", func(e *Event) { e.Date = "not-a-date" }, ErrInvalidDateFormat},
		{"bad_time", func(e *Event) { e.Time = "9:5" }, ErrInvalidTimeFormat},
		{"punctuation_title", func(e *Event) { e.Title = "!!!" }, ErrEmptySlug},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)
			before := e

			err := Normalize(&e, Changes{IsNew: true})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}

			// a rejected write must leave the candidate untouched
			if e.Slug != before.Slug || e.Date != before.Date || e.Time != before.Time || e.Mode != before.Mode {
				t.Fatalf("record mutated on failed normalization: %+v", e)
			}
		})
	}
}

func TestNormalize_ModeLowercased(t *testing.T) {
	e := validEvent()
	e.Mode = "Online"

	if err := Normalize(&e, Changes{IsNew: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Mode != "online" {
		t.Fatalf("mode = %q, want %q", e.Mode, "online")
	}
}

func TestNormalize_SlugOnlyOnTitleChange(t *testing.T) {
	e := validEvent()
	if err := Normalize(&e, Changes{IsNew: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// update that does not touch the title must keep the slug
	e.Description = "New description"
	if err := Normalize(&e, Changes{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Slug != "ai-future-2025" {
		t.Fatalf("slug recomputed without a title change: %q", e.Slug)
	}

	// title change recomputes it
	e.Title = "Robotics Week"
	if err := Normalize(&e, Changes{Title: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Slug != "robotics-week" {
		t.Fatalf("slug = %q, want %q", e.Slug, "robotics-week")
	}
}

func TestApplyUpdate_ChangeDetection(t *testing.T) {
	current := validEvent()
	if err := Normalize(&current, Changes{IsNew: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := UpdateEventRequest{
		Title:       current.Title,
		Description: "different",
		Overview:    current.Overview,
		Image:       current.Image,
		Venue:       current.Venue,
		Location:    current.Location,
		Audience:    current.Audience,
		Organizer:   current.Organizer,
		Date:        current.Date,
		Time:        current.Time,
		Mode:        string(current.Mode),
		Agenda:      current.Agenda,
		Tags:        current.Tags,
	}

	next, ch := ApplyUpdate(current, req)

	if ch.Title || ch.Date || ch.Time {
		t.Fatalf("no hook-relevant field changed, got %+v", ch)
	}
	if next.Slug != current.Slug {
		t.Fatalf("slug must carry over unchanged, got %q", next.Slug)
	}

	req.Title = "Another Title"
	_, ch = ApplyUpdate(current, req)
	if !ch.Title {
		t.Fatal("title change not detected")
	}
}
