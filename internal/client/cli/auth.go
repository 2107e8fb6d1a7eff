package cli

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/identity"
)

func (a *App) loginView(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	if err := a.ids.SignIn(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, identity.Message(err))
		return nil
	}

	a.toasts.Success("Signed in")
	return a.open(ctx, "/cards")
}

func (a *App) registerView(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Choose a password")
	if err != nil {
		return err
	}

	if err := a.ids.Register(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, identity.Message(err))
		return nil
	}

	a.toasts.Success("Account created")
	return a.open(ctx, "/onboarding/step-1")
}

// passwordResetView always reports success; whether the email exists is
// not revealed.
func (a *App) passwordResetView(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	_ = a.ids.SendPasswordReset(ctx, email)
	fmt.Fprintln(a.out, "If an account exists for this email, a reset link has been sent.")
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.ids.SignOut(ctx); err != nil {
		fmt.Fprintln(a.out, "Sign-out failed:", err)
		return nil
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
