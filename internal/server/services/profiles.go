package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/observe"
	"github.com/dkrasnova/brandkit/internal/server/models"
	"github.com/dkrasnova/brandkit/internal/server/repositories/repomanager"
)

// ProfilePatch is a partial profile update; nil fields stay untouched.
type ProfilePatch struct {
	Handle            *string  `json:"handle,omitempty"`
	ContentType       *string  `json:"content_type,omitempty"`
	BrandDescription  *string  `json:"brand_description,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	AIInstructions    *string  `json:"ai_instructions,omitempty"`
	LinkedInConnected *bool    `json:"linkedin_connected,omitempty"`
}

func (pt ProfilePatch) applyTo(p *models.Profile) {
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

type ProfileService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	log   observe.Logger
}

func NewProfileService(db *sql.DB, repos repomanager.RepositoryManager, log observe.Logger) *ProfileService {
	if log == nil {
		log = observe.NewNop()
	}
	return &ProfileService{db: db, repos: repos, log: log}
}

func (s *ProfileService) Get(ctx context.Context, uid string) (*models.Profile, error) {
	return s.repos.Profiles(s.db).GetByUID(ctx, uid)
}

func (s *ProfileService) Update(ctx context.Context, uid string, patch ProfilePatch) (*models.Profile, error) {
	repo := s.repos.Profiles(s.db)
	p, err := repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	patch.applyTo(p)
	return repo.Update(ctx, p)
}

// Onboard records the submitted onboarding state. The submitted snapshot's
// answer fields overwrite the stored ones; the step becomes the server's
// word on progress, and step 4 marks onboarding complete.
func (s *ProfileService) Onboard(ctx context.Context, uid string, step int, data *models.Profile) (*models.Profile, error) {
	if step < 1 || step > 4 {
		return nil, fmt.Errorf("onboarding step %d out of range: %w", step, common.ErrInvalidArgument)
	}

	repo := s.repos.Profiles(s.db)
	p, err := repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if data != nil {
		p.Handle = data.Handle
		p.ContentType = data.ContentType
		p.BrandDescription = data.BrandDescription
		if data.Keywords != nil {
			p.Keywords = append([]string(nil), data.Keywords...)
		}
	}
	p.OnboardingStep = step
	if step == 4 {
		p.OnboardingComplete = true
	}

	updated, err := repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "onboarding recorded", "uid", uid, "step", step, "complete", updated.OnboardingComplete)
	return updated, nil
}

// GenerateInstructions derives the AI writing instructions from the brand
// answers and stores them on the profile.
func (s *ProfileService) GenerateInstructions(ctx context.Context, uid string) (*models.Profile, error) {
	repo := s.repos.Profiles(s.db)
	p, err := repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	instructions := composeInstructions(p)
	p.AIInstructions = &instructions
	return repo.Update(ctx, p)
}

func composeInstructions(p *models.Profile) string {
	var b strings.Builder
	b.WriteString("Write engaging LinkedIn posts")
	if p.ContentType != nil && *p.ContentType != "" {
		fmt.Fprintf(&b, " for a %s creator", *p.ContentType)
	}
	if p.Handle != nil && *p.Handle != "" {
		fmt.Fprintf(&b, " known as %s", *p.Handle)
	}
	b.WriteString(".")
	if p.BrandDescription != nil && *p.BrandDescription != "" {
		fmt.Fprintf(&b, " Brand voice: %s.", *p.BrandDescription)
	}
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&b, " Focus on: %s.", strings.Join(p.Keywords, ", "))
	}
	return b.String()
}

// LinkedInStatus reports whether the account has a LinkedIn connection.
func (s *ProfileService) LinkedInStatus(ctx context.Context, uid string) (bool, error) {
	p, err := s.repos.Profiles(s.db).GetByUID(ctx, uid)
	if err != nil {
		return false, err
	}
	return p.LinkedInConnected, nil
}

// LinkedInConnect completes the OAuth callback. The code exchange with
// LinkedIn itself is out of scope; a non-empty code marks the connection.
func (s *ProfileService) LinkedInConnect(ctx context.Context, uid, code, state string) error {
	if code == "" {
		return fmt.Errorf("missing authorization code: %w", common.ErrInvalidArgument)
	}

	repo := s.repos.Profiles(s.db)
	p, err := repo.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	p.LinkedInConnected = true
	_, err = repo.Update(ctx, p)
	return err
}

func (s *ProfileService) LinkedInDisconnect(ctx context.Context, uid string) error {
	repo := s.repos.Profiles(s.db)
	p, err := repo.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	p.LinkedInConnected = false
	_, err = repo.Update(ctx, p)
	return err
}
