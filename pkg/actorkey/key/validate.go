package key

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
)

var (
	// ErrInvalidArgument is returned when a key is constructed with an unknown kind.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrParse is returned when serialized input cannot be decoded.
	ErrParse = errors.New("malformed key document")

	// ErrAmbiguousActor is returned when a document names neither or both of
	// the "user" and "client" actor fields.
	ErrAmbiguousActor = errors.New("ambiguous actor")

	// ErrIncomplete is returned by CheckComplete for records that cannot be submitted.
	ErrIncomplete = errors.New("incomplete key record")
)

var (
	actorNameRe  = regexp.MustCompile(`^[a-z0-9\-_]+$`)
	expirationRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z|infinity)$`)
)

// ValidationError reports a value that was rejected by a field setter.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, s, e.Reason)
	}
	return fmt.Sprintf("invalid %s (%T): %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validateActor(v string) error {
	if !actorNameRe.MatchString(v) {
		return &ValidationError{Field: FieldActor, Value: v, Reason: "must match " + actorNameRe.String()}
	}
	return nil
}

// Names follow the actor pattern, except that a derived fingerprint is also
// accepted so that records with a default name survive a round trip.
func validateName(v string) error {
	if actorNameRe.MatchString(v) || fingerprint.IsFingerprint(v) {
		return nil
	}
	return &ValidationError{Field: FieldName, Value: v, Reason: "must match " + actorNameRe.String() + " or be a key fingerprint"}
}

func validateExpirationDate(v string) error {
	if !expirationRe.MatchString(v) {
		return &ValidationError{Field: FieldExpirationDate, Value: v, Reason: `must be "infinity" or a UTC timestamp like 2020-12-24T21:00:00Z`}
	}
	return nil
}

// ValidActorName reports whether s is acceptable as an actor (or a chosen key name).
func ValidActorName(s string) bool {
	return actorNameRe.MatchString(s)
}
