package booking

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// basic local@domain.tld shape; anything stricter belongs to the mail
// provider, not this hook.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EventChecker is the slice of the events store the booking hook needs.
type EventChecker interface {
	Exists(ctx context.Context, eventID string) (bool, error)
}

// NormalizeEmail trims and lowercases the address and rejects anything
// that does not look like local@domain.tld.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailShape.MatchString(email) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmailShape, raw)
	}
	return email, nil
}

// ValidateReference is the Booking pre-commit hook: it confirms the
// referenced event exists before the write is allowed to proceed. The check
// is advisory, not transactional; a concurrent event deletion can still
// race the insert.
func ValidateReference(ctx context.Context, events EventChecker, eventID string) error {
	exists, err := events.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEventReferenceCheckFailed, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrEventReferenceNotFound, eventID)
	}
	return nil
}
