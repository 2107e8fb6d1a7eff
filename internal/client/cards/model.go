// Package cards is the content-card feed: the reactive card list and the
// operations mutating it against the backend.
package cards

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusDismissed Status = "dismissed"
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
)

// Card is one generated content suggestion.
type Card struct {
	ID              string    `json:"id"`
	UID             string    `json:"uid"`
	Content         string    `json:"content"`
	OriginalContent string    `json:"original_content"`
	Status          Status    `json:"status"`
	Platform        string    `json:"platform"`
	IsEdited        bool      `json:"is_edited"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Patch is a partial card update.
type Patch struct {
	Content *string `json:"content,omitempty"`
	Status  *Status `json:"status,omitempty"`
}
