package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// Changes tells Normalize which fields were modified since the record was
// loaded. The persistence wrapper fills it in: a freshly created record has
// IsNew set and every flag implied.
type Changes struct {
	IsNew bool
	Title bool
	Date  bool
	Time  bool
}

// Patterns are compiled once per process; there is no per-write setup.
var (
	slugStrip   = regexp.MustCompile(`[^\pL\pN_\s]+`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-{2,}`)

	// 24-hour H:MM / HH:MM. Minutes must be two digits.
	clock24 = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	// 12-hour H:MM AM/PM with an optional single space before the suffix.
	clock12 = regexp.MustCompile(`^(1[0-2]|0?[1-9]):([0-5][0-9]) ?([AaPp][Mm])$`)
)

// Normalize is the Event pre-commit hook. It validates the candidate record
// and rewrites title-derived, date and time fields into canonical form.
// On failure the record is left untouched and the error is the write's
// outcome; the persistence wrapper must not commit.
func Normalize(e *Event, ch Changes) error {
	out := *e

	required := []struct {
		name  string
		value *string
	}{
		{"title", &out.Title},
		{"description", &out.Description},
		{"overview", &out.Overview},
		{"image", &out.Image},
		{"venue", &out.Venue},
		{"location", &out.Location},
		{"audience", &out.Audience},
		{"organizer", &out.Organizer},
		{"date", &out.Date},
		{"time", &out.Time},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingRequiredField, f.name)
		}
	}

	out.Mode = Mode(strings.ToLower(strings.TrimSpace(string(out.Mode))))
	if !out.Mode.IsValid() {
		return fmt.Errorf("%w: mode %q", ErrInvalidEnumValue, out.Mode)
	}

	var err error
	if out.Agenda, err = trimSequence("agenda", out.Agenda); err != nil {
		return err
	}
	if out.Tags, err = trimSequence("tags", out.Tags); err != nil {
		return err
	}

	// The slug tracks the title: recomputed on create and whenever the
	// title changes, never otherwise.
	if ch.IsNew || ch.Title {
		slug := Slugify(out.Title)
		if slug == "" {
			return fmt.Errorf("%w: %q", ErrEmptySlug, out.Title)
		}
		out.Slug = slug
	}

	if ch.IsNew || ch.Date {
		canonical, err := CanonicalDate(out.Date)
		if err != nil {
			return err
		}
		out.Date = canonical
	}

	if ch.IsNew || ch.Time {
		canonical, err := CanonicalTime(out.Time)
		if err != nil {
			return err
		}
		out.Time = canonical
	}

	*e = out
	return nil
}

func trimSequence(name string, values []string) ([]string, error) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySequenceField, name)
	}
	return kept, nil
}

// Slugify derives a URL-safe identifier from a title: lowercase, strip
// every rune that is not a letter, digit, underscore or whitespace, then
// collapse whitespace and hyphen runs into single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CanonicalDate parses common textual and numeric date forms and returns
// YYYY-MM-DD. Time-of-day and zone information in the input is discarded.
func CanonicalDate(s string) (string, error) {
	t, err := dateparse.ParseAny(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t.Format("2006-01-02"), nil
}

// CanonicalTime accepts 24-hour H:MM/HH:MM or 12-hour H:MM AM/PM and
// returns zero-padded 24-hour HH:MM.
func CanonicalTime(s string) (string, error) {
	s = strings.TrimSpace(s)

	if m := clock24.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}

	if m := clock12.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		pm := strings.EqualFold(m[3], "pm")
		switch {
		case hour == 12 && !pm:
			hour = 0
		case hour != 12 && pm:
			hour += 12
		}
		return fmt.Sprintf("%02d:%s", hour, m[2]), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}
