// Package social manages third-party posting integrations. LinkedIn is the
// only one so far.
package social

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/signal"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// API is the backend surface for the LinkedIn integration. *api.Client
// satisfies it.
type API interface {
	LinkedInStatus(ctx context.Context) (bool, error)
	LinkedInConnect(ctx context.Context, code, state string) error
	LinkedInDisconnect(ctx context.Context) error
}

// LinkedIn tracks whether the account has a LinkedIn connection.
type LinkedIn struct {
	api       API
	log       observe.Logger
	connected *signal.Cell[bool]
}

func NewLinkedIn(api API, log observe.Logger) *LinkedIn {
	if log == nil {
		log = observe.NewNop()
	}
	return &LinkedIn{
		api:       api,
		log:       log,
		connected: signal.NewCell(false),
	}
}

func (l *LinkedIn) Connected() signal.Signal[bool] { return signal.ReadOnly(l.connected) }

// Refresh queries the connection status. A failed check degrades to
// "not connected" rather than surfacing an error; the status widget
// must never block the rest of the UI.
func (l *LinkedIn) Refresh(ctx context.Context) bool {
	connected, err := l.api.LinkedInStatus(ctx)
	if err != nil {
		l.log.Warn(ctx, "linkedin status check failed", "error", err)
		l.connected.Set(false)
		return false
	}
	l.connected.Set(connected)
	return connected
}

// Connect completes the OAuth callback with the authorization code.
func (l *LinkedIn) Connect(ctx context.Context, code, state string) error {
	if err := l.api.LinkedInConnect(ctx, code, state); err != nil {
		l.log.Error(ctx, "linkedin connect failed", "error", err)
		return fmt.Errorf("connecting linkedin: %w", err)
	}
	l.connected.Set(true)
	return nil
}

func (l *LinkedIn) Disconnect(ctx context.Context) error {
	if err := l.api.LinkedInDisconnect(ctx); err != nil {
		l.log.Error(ctx, "linkedin disconnect failed", "error", err)
		return fmt.Errorf("disconnecting linkedin: %w", err)
	}
	l.connected.Set(false)
	return nil
}
