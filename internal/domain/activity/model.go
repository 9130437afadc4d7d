// Package activity defines the audit trail written by the activity
// handler module for every dispatched lifecycle event.
package activity

import (
	"context"
	"time"
)

// Entry is one audit row describing a dispatched event.
type Entry struct {
	ID        int64     `json:"id"`
	EventType string    `json:"eventType"`
	Project   string    `json:"project,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	ItemCode  string    `json:"itemCode,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository appends audit entries.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
}
