// Package guard contains the navigation-guard decision functions. Each
// guard consumes the identity and profile stores and returns allow or
// deny-with-redirect; store failures are converted to fail-safe redirects,
// never propagated into the navigation pipeline.
package guard

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/identity"
	"github.com/dkrasnova/brandkit/internal/client/profile"
	"github.com/dkrasnova/brandkit/internal/client/signal"
)

// Decision is the transient result of one guard evaluation.
type Decision struct {
	OK     bool
	Target string
}

func Allow() Decision { return Decision{OK: true} }

func Redirect(target string) Decision { return Decision{Target: target} }

// Guard evaluates one navigation attempt. It is stateless across attempts;
// every invocation starts fresh. The error return is reserved for context
// cancellation; a guard that cannot decide redirects instead of failing.
type Guard func(ctx context.Context) (Decision, error)

// Chain composes guards left to right; the first redirect short-circuits
// the remainder.
func Chain(guards ...Guard) Guard {
	return func(ctx context.Context) (Decision, error) {
		for _, g := range guards {
			d, err := g(ctx)
			if err != nil {
				return Decision{}, err
			}
			if !d.OK {
				return d, nil
			}
		}
		return Allow(), nil
	}
}

// IdentityAwaiter is the slice of the identity store the auth guards need:
// the asynchronous stream rather than the bare snapshot, so a navigation
// issued during initial loading stays pending until the first emission.
type IdentityAwaiter interface {
	Await(ctx context.Context) (*identity.Identity, error)
}

// RequireAuth allows navigation once the stream emits a non-nil identity;
// a nil identity redirects to signInTarget.
func RequireAuth(ids IdentityAwaiter, signInTarget string) Guard {
	return func(ctx context.Context) (Decision, error) {
		id, err := ids.Await(ctx)
		if err != nil {
			return Decision{}, err
		}
		if id == nil {
			return Redirect(signInTarget), nil
		}
		return Allow(), nil
	}
}

// RequireNoAuth is the inverse, for the sign-in and registration screens: a
// signed-in user is bounced to the default authenticated landing screen
// instead of re-entering the auth flow.
func RequireNoAuth(ids IdentityAwaiter, landingTarget string) Guard {
	return func(ctx context.Context) (Decision, error) {
		id, err := ids.Await(ctx)
		if err != nil {
			return Decision{}, err
		}
		if id != nil {
			return Redirect(landingTarget), nil
		}
		return Allow(), nil
	}
}

// OnboardingSource is the slice of the profile store the onboarding guard
// reads.
type OnboardingSource interface {
	Current() signal.Signal[*profile.Profile]
	Fetch(ctx context.Context) (*profile.Profile, error)
	OnboardingStep() int
	IsOnboardingComplete() bool
}

// StepTarget renders the redirect target for an onboarding step.
func StepTarget(step int) string {
	return fmt.Sprintf("/onboarding/step-%d", step)
}

// RequireOnboarding gates screens that need a finished profile. It must run
// after RequireAuth: an identity is assumed to exist.
//
// Missing snapshots are fetched on demand. A failed fetch fails safe: the
// user lands on step 1 rather than being blocked, and completion is never
// assumed on a failed read. Step 0 redirects to step 1; there is no step-0
// screen.
func RequireOnboarding(profiles OnboardingSource) Guard {
	return func(ctx context.Context) (Decision, error) {
		if profiles.Current().Get() == nil {
			if _, err := profiles.Fetch(ctx); err != nil {
				return Redirect(StepTarget(1)), nil
			}
		}

		if profiles.IsOnboardingComplete() {
			return Allow(), nil
		}

		step := profiles.OnboardingStep()
		if step == 0 {
			step = 1
		}
		return Redirect(StepTarget(step)), nil
	}
}
