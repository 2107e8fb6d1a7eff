package cards

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/signal"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// API is the backend surface the service talks to. *api.Client satisfies it.
type API interface {
	ListCards(ctx context.Context) ([]Card, error)
	GenerateCards(ctx context.Context) ([]Card, error)
	RegenerateCard(ctx context.Context, cardID string) (*Card, error)
	UpdateCard(ctx context.Context, cardID string, patch Patch) (*Card, error)
}

// Service holds the reactive card feed. All mutations go through the backend
// and the local list is replaced with what the backend returns.
type Service struct {
	api     API
	log     observe.Logger
	cards   *signal.Cell[[]Card]
	loading *signal.Cell[bool]
	lastErr *signal.Cell[error]
}

func NewService(api API, log observe.Logger) *Service {
	if log == nil {
		log = observe.NewNop()
	}
	return &Service{
		api:     api,
		log:     log,
		cards:   signal.NewCell[[]Card](nil),
		loading: signal.NewCell(false),
		lastErr: signal.NewCell[error](nil),
	}
}

func (s *Service) Cards() signal.Signal[[]Card] { return signal.ReadOnly(s.cards) }

func (s *Service) Loading() signal.Signal[bool] { return signal.ReadOnly(s.loading) }

func (s *Service) Err() signal.Signal[error] { return signal.ReadOnly(s.lastErr) }

// Load fetches the card list.
func (s *Service) Load(ctx context.Context) error {
	s.loading.Set(true)
	defer s.loading.Set(false)

	list, err := s.api.ListCards(ctx)
	if err != nil {
		s.log.Error(ctx, "loading cards", "error", err)
		s.lastErr.Set(err)
		return fmt.Errorf("loading cards: %w", err)
	}
	s.cards.Set(list)
	s.lastErr.Set(nil)
	return nil
}

// Generate asks the backend for a fresh batch of suggestions and replaces
// the list with the result.
func (s *Service) Generate(ctx context.Context) error {
	s.loading.Set(true)
	defer s.loading.Set(false)

	list, err := s.api.GenerateCards(ctx)
	if err != nil {
		s.log.Error(ctx, "generating cards", "error", err)
		s.lastErr.Set(err)
		return fmt.Errorf("generating cards: %w", err)
	}
	s.cards.Set(list)
	s.lastErr.Set(nil)
	return nil
}

// Regenerate replaces one card's content with a new suggestion.
func (s *Service) Regenerate(ctx context.Context, cardID string) error {
	card, err := s.api.RegenerateCard(ctx, cardID)
	if err != nil {
		s.log.Error(ctx, "regenerating card", "card_id", cardID, "error", err)
		s.lastErr.Set(err)
		return fmt.Errorf("regenerating card: %w", err)
	}
	s.replace(*card)
	return nil
}

// Edit stores a manual rewrite of the card's content.
func (s *Service) Edit(ctx context.Context, cardID, content string) error {
	return s.update(ctx, cardID, Patch{Content: &content})
}

// Dismiss removes the card from the active feed without deleting it.
func (s *Service) Dismiss(ctx context.Context, cardID string) error {
	status := StatusDismissed
	return s.update(ctx, cardID, Patch{Status: &status})
}

// Schedule marks the card for posting.
func (s *Service) Schedule(ctx context.Context, cardID string) error {
	status := StatusScheduled
	return s.update(ctx, cardID, Patch{Status: &status})
}

func (s *Service) update(ctx context.Context, cardID string, patch Patch) error {
	card, err := s.api.UpdateCard(ctx, cardID, patch)
	if err != nil {
		s.log.Error(ctx, "updating card", "card_id", cardID, "error", err)
		s.lastErr.Set(err)
		return fmt.Errorf("updating card: %w", err)
	}
	s.replace(*card)
	return nil
}

// replace swaps the card with the backend's authoritative copy, keeping
// list order.
func (s *Service) replace(card Card) {
	s.cards.Update(func(list []Card) []Card {
		out := make([]Card, len(list))
		copy(out, list)
		for i := range out {
			if out[i].ID == card.ID {
				out[i] = card
				return out
			}
		}
		return append(out, card)
	})
	s.lastErr.Set(nil)
}

// Active filters the current list to cards still in the feed.
func (s *Service) Active() []Card {
	var out []Card
	for _, c := range s.cards.Get() {
		if c.Status == StatusActive {
			out = append(out, c)
		}
	}
	return out
}

// Scheduled filters the current list to cards queued for posting.
func (s *Service) Scheduled() []Card {
	var out []Card
	for _, c := range s.cards.Get() {
		if c.Status == StatusScheduled {
			out = append(out, c)
		}
	}
	return out
}
