// Package profile owns the user's onboarding/profile record: the reactive
// snapshot, the derived onboarding state, and the optimistic step-completion
// protocol against the backend of record.
package profile

import "time"

// Profile is the application-side record for one identity. Nullable fields
// stay nil until the onboarding step that populates them has run.
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

// Clone returns a deep copy. Snapshots handed to consumers are never mutated
// in place; every store mutation replaces the snapshot with a fresh value.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Keywords != nil {
		cp.Keywords = append([]string(nil), p.Keywords...)
	}
	return &cp
}

// placeholder synthesizes an empty local profile, used when staging
// onboarding data before any server record exists. Step 0 matters: step
// checks treat "not started" distinctly from step 1.
func placeholder(uid, email string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UID:       uid,
		Email:     email,
		Keywords:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch carries a partial update. Nil fields are omitted from the PATCH body
// and left untouched when staged locally.
type Patch struct {
	Handle            *string  `json:"handle,omitempty"`
	ContentType       *string  `json:"content_type,omitempty"`
	BrandDescription  *string  `json:"brand_description,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	AIInstructions    *string  `json:"ai_instructions,omitempty"`
	LinkedInConnected *bool    `json:"linkedin_connected,omitempty"`
}

func (pt Patch) applyTo(p *Profile) {
	if pt.Handle != nil {
		p.Handle = pt.Handle
	}
	if pt.ContentType != nil {
		p.ContentType = pt.ContentType
	}
	if pt.BrandDescription != nil {
		p.BrandDescription = pt.BrandDescription
	}
	if pt.Keywords != nil {
		p.Keywords = append([]string(nil), pt.Keywords...)
	}
	if pt.AIInstructions != nil {
		p.AIInstructions = pt.AIInstructions
	}
	if pt.LinkedInConnected != nil {
		p.LinkedInConnected = *pt.LinkedInConnected
	}
}
