package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meta carries the identity and timestamps shared by every persisted record.
type Meta struct {
	ID        uuid.UUID `json:"id"        db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// GetID returns the record ID.
func (m Meta) GetID() uuid.UUID { return m.ID }

// Stamp prepares a record for insertion: it assigns a new ID when none is
// set, fills CreatedAt when zero and sets UpdatedAt to now.
func (m *Meta) Stamp(now time.Time) {
	if m.ID == uuid.Nil {
		m.ID = NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Base returns the embedded Meta.
func (m *Meta) Base() *Meta { return m }

// Keep copies the identity and creation time of prev into m.
func (m *Meta) Keep(prev Meta) {
	m.ID = prev.ID
	m.CreatedAt = prev.CreatedAt
}

// Touch sets UpdatedAt to now.
func (m *Meta) Touch(now time.Time) { m.UpdatedAt = now }

// NewID returns a time-ordered random UUID (v7). It falls back to a v4 UUID
// if the v7 generator fails.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
