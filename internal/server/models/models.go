// Package models defines the server-side records persisted by the
// repositories. JSON tags match the client wire format; handler responses
// marshal these directly.
package models

import "time"

// Account is a registered user.
type Account struct {
	ID           string    `json:"-"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Disabled     bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is a server-stored, single-use refresh credential.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}

// Profile is the onboarding/brand record for one account.
type Profile struct {
	ID                 string    `json:"id"`
	UID                string    `json:"uid"`
	Email              string    `json:"email"`
	Handle             *string   `json:"handle"`
	ContentType        *string   `json:"content_type"`
	BrandDescription   *string   `json:"brand_description"`
	Keywords           []string  `json:"keywords"`
	OnboardingStep     int       `json:"onboarding_step"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	AIInstructions     *string   `json:"ai_instructions"`
	LinkedInConnected  bool      `json:"linkedin_connected"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Card is one generated content suggestion.
type Card struct {
	ID              string    `json:"id"`
	UID             string    `json:"uid"`
	Content         string    `json:"content"`
	OriginalContent string    `json:"original_content"`
	Status          string    `json:"status"`
	Platform        string    `json:"platform"`
	IsEdited        bool      `json:"is_edited"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	CardStatusActive    = "active"
	CardStatusDismissed = "dismissed"
	CardStatusScheduled = "scheduled"
	CardStatusPosted    = "posted"
)
