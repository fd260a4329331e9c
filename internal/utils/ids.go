package utils

import (
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// NewID returns a new unique task / worker identifier (a UUID).
func NewID() string {
	return uuid.NewString()
}

// NewRandomTag returns a short random string used as an etag for
// optimistic locking.
func NewRandomTag() string {
	return shortuuid.New()
}

// IsValidID tells us if the given string is a plausible identifier.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
