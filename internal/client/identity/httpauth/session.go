package httpauth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/repositories/sessions"
)

const sessionKey = "session"

// Session is the locally persisted auth state. Staged onboarding data is
// deliberately not part of it; only credentials survive a restart.
type Session struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func loadSession(ctx context.Context, repo sessions.Repository) (*Session, error) {
	raw, err := repo.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}

func saveSession(ctx context.Context, repo sessions.Repository, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := repo.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func clearSession(ctx context.Context, repo sessions.Repository) error {
	if err := repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
