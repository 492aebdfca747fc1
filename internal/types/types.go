// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
//
// Every entity comes in three shapes:
//
//	<Entity>        the stored record returned to clients (id + timestamps)
//	<Entity>Create  the POST payload, checked with validate:"..." tags
//	<Entity>Update  the PATCH payload; every field is an Optional or
//	                Nullable wrapper so "omitted" and "set" differ
//
// Filters (<Entity>Filter) hold one pointer per filterable field. A nil
// pointer means "no constraint"; all non-nil pointers must match.
package types

import "github.com/google/uuid"

// NewID returns a fresh random (version 4) identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// matches reports whether an optional equality filter accepts got.
func matches(want *string, got string) bool {
	return want == nil || *want == got
}

// matchesPtr is matches for nullable record fields. A null field never
// satisfies a filter.
func matchesPtr(want *string, got *string) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
