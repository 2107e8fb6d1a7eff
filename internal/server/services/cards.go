package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/observe"
	"github.com/dkrasnova/brandkit/internal/server/models"
	"github.com/dkrasnova/brandkit/internal/server/repositories/repomanager"
)

// CardPatch is a partial card update.
type CardPatch struct {
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

var validStatuses = map[string]bool{
	models.CardStatusActive:    true,
	models.CardStatusDismissed: true,
	models.CardStatusScheduled: true,
	models.CardStatusPosted:    true,
}

type CardService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	log      observe.Logger
	perBatch int
}

func NewCardService(db *sql.DB, repos repomanager.RepositoryManager, perBatch int, log observe.Logger) *CardService {
	if log == nil {
		log = observe.NewNop()
	}
	if perBatch <= 0 {
		perBatch = 5
	}
	return &CardService{db: db, repos: repos, log: log, perBatch: perBatch}
}

func (s *CardService) List(ctx context.Context, uid string) ([]models.Card, error) {
	return s.repos.Cards(s.db).ListByUID(ctx, uid)
}

// Generate creates a fresh batch of suggestions from the profile's brand
// answers and returns the full list.
func (s *CardService) Generate(ctx context.Context, uid string) ([]models.Card, error) {
	profile, err := s.repos.Profiles(s.db).GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	repo := s.repos.Cards(s.db)
	for i := 0; i < s.perBatch; i++ {
		content := suggestContent(profile, i)
		if _, err := repo.Create(ctx, &models.Card{
			UID:             uid,
			Content:         content,
			OriginalContent: content,
			Status:          models.CardStatusActive,
			Platform:        "linkedin",
		}); err != nil {
			return nil, fmt.Errorf("creating card: %w", err)
		}
	}

	s.log.Info(ctx, "cards generated", "uid", uid, "count", s.perBatch)
	return repo.ListByUID(ctx, uid)
}

// Regenerate replaces a card's content with a new suggestion, dropping any
// manual edit.
func (s *CardService) Regenerate(ctx context.Context, uid, cardID string) (*models.Card, error) {
	repo := s.repos.Cards(s.db)
	card, err := s.owned(ctx, uid, cardID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repos.Profiles(s.db).GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	content := suggestContent(profile, len(card.Content))
	card.Content = content
	card.OriginalContent = content
	card.IsEdited = false
	return repo.Update(ctx, card)
}

// Update applies a patch. A content change marks the card edited; the
// original suggestion is kept for comparison.
func (s *CardService) Update(ctx context.Context, uid, cardID string, patch CardPatch) (*models.Card, error) {
	card, err := s.owned(ctx, uid, cardID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !validStatuses[*patch.Status] {
			return nil, fmt.Errorf("unknown card status %q: %w", *patch.Status, common.ErrInvalidArgument)
		}
		card.Status = *patch.Status
	}
	if patch.Content != nil && *patch.Content != card.Content {
		card.Content = *patch.Content
		card.IsEdited = true
	}

	return s.repos.Cards(s.db).Update(ctx, card)
}

// owned loads the card and enforces ownership. Foreign cards come back as
// forbidden, not as not-found; the id was valid, the caller just doesn't
// own it.
func (s *CardService) owned(ctx context.Context, uid, cardID string) (*models.Card, error) {
	card, err := s.repos.Cards(s.db).Get(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UID != uid {
		return nil, common.ErrForbidden
	}
	return card, nil
}

// suggestContent is the stand-in for the generation model: deterministic
// templated suggestions seeded from the profile.
func suggestContent(p *models.Profile, seed int) string {
	topics := p.Keywords
	if len(topics) == 0 {
		topics = []string{"your craft"}
	}
	topic := topics[seed%len(topics)]

	templates := []string{
		"Three lessons I learned about %s this year.",
		"The most common mistake I see people make with %s, and how to avoid it.",
		"Why %s matters more than you think.",
		"A behind-the-scenes look at how I approach %s.",
		"What nobody tells you when you start out with %s.",
	}
	return fmt.Sprintf(templates[seed%len(templates)], topic)
}
