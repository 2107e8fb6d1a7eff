package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkrasnova/brandkit/internal/client/nav"
	"github.com/dkrasnova/brandkit/internal/client/notify"
)

// open resolves path through the router and renders whatever view the
// guards landed on. A vetoed navigation (unsaved changes kept) stays put.
func (a *App) open(ctx context.Context, path string) error {
	landed, err := a.router.Navigate(ctx, path)
	if errors.Is(err, nav.ErrCancelled) {
		fmt.Fprintln(a.out, "Staying on the current screen.")
		return nil
	}
	if err != nil {
		return err
	}
	if landed != path {
		fmt.Fprintf(a.out, "Redirected to %s\n", landed)
	}
	a.flushToasts()
	return a.render(ctx, landed)
}

func (a *App) render(ctx context.Context, path string) error {
	switch {
	case path == "/login":
		return a.loginView(ctx)
	case path == "/register":
		return a.registerView(ctx)
	case path == "/password-reset":
		return a.passwordResetView(ctx)
	case strings.HasPrefix(path, "/onboarding/step-"):
		step, err := strconv.Atoi(strings.TrimPrefix(path, "/onboarding/step-"))
		if err != nil {
			return fmt.Errorf("bad onboarding path %s: %w", path, err)
		}
		return a.onboardingView(ctx, step)
	case path == "/cards":
		return a.cardsView(ctx)
	case path == "/scheduled":
		return a.scheduledView(ctx)
	case path == "/settings":
		return a.settingsView(ctx)
	default:
		return fmt.Errorf("no view for %s", path)
	}
}

// flushToasts prints pending messages. Auto-dismissing toasts are cleared
// once shown; error toasts stay until explicitly dismissed.
func (a *App) flushToasts() {
	for _, t := range a.toasts.Visible() {
		switch t.Severity {
		case notify.SeverityError:
			fmt.Fprintf(a.out, "[error] %s\n", t.Message)
		default:
			fmt.Fprintf(a.out, "[%s] %s\n", t.Severity, t.Message)
		}
		if t.AutoDismiss {
			a.toasts.Dismiss(t.ID)
		}
	}
}
