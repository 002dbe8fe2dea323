package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a mutation. OldValue and NewValue
// hold JSON snapshots of the record before and after the change.
type AuditLog struct {
	Meta
	UserID     *uuid.UUID  `json:"userId"     db:"user_id"`
	Action     AuditAction `json:"action"     db:"action"`
	Resource   Kind        `json:"resource"   db:"resource"`
	ResourceID uuid.UUID   `json:"resourceId" db:"resource_id"`
	OldValue   string      `json:"oldValue"   db:"old_value"`
	NewValue   string      `json:"newValue"   db:"new_value"`
	IPAddress  string      `json:"ipAddress"  db:"ip_address"`
	UserAgent  string      `json:"userAgent"  db:"user_agent"`
}

// FallbackEvent records a write that was served by the mirror store because
// the durable store was unavailable. These entries are what an operator
// replays once the durable store recovers.
type FallbackEvent struct {
	ID        uuid.UUID `json:"id"`
	RequestID string    `json:"requestId,omitempty"`
	Operation string    `json:"operation"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}
