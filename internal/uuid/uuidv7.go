// Package uuid issues the identifiers given to clients created without one.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 embeds a millisecond timestamp, so
// generated client ids sort by creation time alongside legacy ones.
func New() string {
	if id, err := googleuuid.NewV7(); err == nil {
		return id.String()
	}
	return googleuuid.NewString()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	return googleuuid.Validate(s) == nil
}
