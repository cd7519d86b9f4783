// Package id provides UUIDv7 generation for all platform entities.
// UUIDv7 is time-ordered, allowing natural sorting by creation time.
package id

import (
	"github.com/google/uuid"
)

// New generates a new UUIDv7 (time-ordered UUID) as a string.
// The embedded Unix timestamp gives documents a natural chronological
// ordering without a separate created_at sort key.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.NewString()
	}
	return id.String()
}

// Validate reports whether s is a well-formed UUID.
func Validate(s string) error {
	_, err := uuid.Parse(s)
	return err
}
