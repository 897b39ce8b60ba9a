// Package utils holds small helpers shared across the service.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by other projects, unlike
// internal/ which the compiler keeps private. It is a community convention,
// not a language feature.
package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random UUID v4 string. Session ids double as bearer
// tokens, so they must be unguessable; a counter would not do.
func GenerateID() string {
	return uuid.New().String()
}
