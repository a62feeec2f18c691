// Package models contains the domain record types for the trove trackers.
package models

import "time"

// Meta carries the identity and timestamps shared by every record type.
// The store assigns ID and CreatedAt once at creation; UpdatedAt is bumped
// on every mutation.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID returns the record's unique identifier.
func (m Meta) RecordID() string { return m.ID }

// CreationTime returns the immutable creation timestamp.
func (m Meta) CreationTime() time.Time { return m.CreatedAt }

// identified returns a copy with identity and timestamps filled in where
// they are not already set. Existing values are never overwritten.
func (m Meta) identified(id string, now time.Time) Meta {
	if m.ID == "" {
		m.ID = id
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	return m
}

// stamped returns a copy with both timestamps set explicitly. The store
// uses this on update to preserve the original creation time.
func (m Meta) stamped(created, modified time.Time) Meta {
	m.CreatedAt = created
	m.UpdatedAt = modified
	return m
}
