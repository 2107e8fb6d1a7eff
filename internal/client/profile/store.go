package profile

import (
	"context"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/signal"
	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// API is the slice of the backend the store talks to.
type API interface {
	// GetProfile returns the authoritative record, or common.ErrNotFound.
	GetProfile(ctx context.Context) (*Profile, error)

	// UpdateProfile sends a partial update and returns the server's
	// authoritative record.
	UpdateProfile(ctx context.Context, patch Patch) (*Profile, error)

	// CompleteOnboarding submits the accumulated profile for the given step
	// and returns the authoritative record.
	CompleteOnboarding(ctx context.Context, step int, snapshot *Profile) (*Profile, error)
}

// Store is the onboarding state machine and its synchronization with the
// backend of record. One instance per process.
//
// Network operations follow a single shape: set loading, request, replace
// the snapshot wholesale on success, record the failure and re-raise on
// error, clear loading. Concurrent Update/CompleteStep(4) calls are not
// serialized here; that matches the reference behavior (callers wanting
// at-most-one-in-flight must add their own latch).
type Store struct {
	api API
	log observe.Logger

	profile *signal.Cell[*Profile]
	loading *signal.Cell[bool]
	lastErr *signal.Cell[string]

	step     signal.Signal[int]
	complete signal.Signal[bool]
}

func NewStore(api API, log observe.Logger) *Store {
	if log == nil {
		log = observe.NewNop()
	}
	s := &Store{
		api:     api,
		log:     log.With("component", "profile"),
		profile: signal.NewCell[*Profile](nil),
		loading: signal.NewCell(false),
		lastErr: signal.NewCell(""),
	}
	s.step = signal.Map[*Profile, int](signal.ReadOnly(s.profile), func(p *Profile) int {
		if p == nil {
			return 0
		}
		return p.OnboardingStep
	})
	s.complete = signal.Map[*Profile, bool](signal.ReadOnly(s.profile), func(p *Profile) bool {
		return p != nil && p.OnboardingComplete
	})
	return s
}

// Current is the profile snapshot, nil until fetched or staged.
func (s *Store) Current() signal.Signal[*Profile] { return signal.ReadOnly(s.profile) }

// Loading reports an in-flight network operation.
func (s *Store) Loading() signal.Signal[bool] { return signal.ReadOnly(s.loading) }

// Err holds the last operation's error message, "" when clear.
func (s *Store) Err() signal.Signal[string] { return signal.ReadOnly(s.lastErr) }

// Step is the derived onboarding step: the snapshot's step, or 0 when no
// snapshot exists.
func (s *Store) Step() signal.Signal[int] { return s.step }

// Complete is the derived completion flag: the snapshot's flag, or false
// when no snapshot exists.
func (s *Store) Complete() signal.Signal[bool] { return s.complete }

// OnboardingStep is a convenience getter over Step.
func (s *Store) OnboardingStep() int { return s.step.Get() }

// IsOnboardingComplete is a convenience getter over Complete.
func (s *Store) IsOnboardingComplete() bool { return s.complete.Get() }

// Set replaces the snapshot with an authoritative record obtained elsewhere
// (e.g. an endpoint that returns the updated profile as a side effect).
func (s *Store) Set(p *Profile) { s.profile.Set(p.Clone()) }

// Seed stages an empty placeholder for a fresh identity so the wizard has a
// record to accumulate into. Local only; the server is not touched.
func (s *Store) Seed(uid, email string) {
	s.profile.Set(placeholder(uid, email))
}

// Reload re-fetches the authoritative record, dropping any staged local
// state. Satisfies identity.ProfileWarmer.
func (s *Store) Reload(ctx context.Context) error {
	_, err := s.Fetch(ctx)
	return err
}

// Fetch requests the authoritative profile and replaces the snapshot
// wholesale. Concurrent calls are not coalesced; callers check snapshot
// presence first (the onboarding guard does).
func (s *Store) Fetch(ctx context.Context) (*Profile, error) {
	s.loading.Set(true)
	s.lastErr.Set("")
	defer s.loading.Set(false)

	p, err := s.api.GetProfile(ctx)
	if err != nil {
		s.lastErr.Set(errMessage(err, "Failed to load profile"))
		return nil, err
	}
	s.profile.Set(p)
	return p, nil
}

// Update sends a partial update and replaces the snapshot with the server's
// response. Replacement is deliberate, not a local merge: the server may
// normalize or reject fields, and the client must reflect exactly what was
// persisted. On failure the snapshot is left untouched.
func (s *Store) Update(ctx context.Context, patch Patch) (*Profile, error) {
	s.loading.Set(true)
	s.lastErr.Set("")
	defer s.loading.Set(false)

	p, err := s.api.UpdateProfile(ctx, patch)
	if err != nil {
		s.lastErr.Set(errMessage(err, "Failed to update profile"))
		return nil, err
	}
	s.profile.Set(p)
	return p, nil
}

// CompleteStep is the onboarding transition. The step's fields are applied
// to the local snapshot immediately (synthesizing a placeholder if none
// exists) so step-local UI reflects progress without waiting on the network.
// Steps 1–3 stop there: the server is not touched until the final step, so
// an in-progress wizard never creates a partially-validated server record.
// Step 4 submits the accumulated profile; on success the snapshot becomes
// the server's response (which carries onboarding_complete=true), on failure
// the optimistic step-4 data stays in place so a retry resubmits the same
// fields.
func (s *Store) CompleteStep(ctx context.Context, step int, fields Patch) (*Profile, error) {
	if step < 1 || step > 4 {
		return nil, fmt.Errorf("onboarding step %d out of range [1,4]: %w", step, common.ErrInvalidArgument)
	}

	s.profile.Update(func(cur *Profile) *Profile {
		base := cur.Clone()
		if base == nil {
			base = placeholder("", "")
		}
		fields.applyTo(base)
		base.OnboardingStep = step
		// The completion flag is server-acknowledged only; staging never
		// sets it, preserving complete => step >= 4.
		return base
	})

	if step < 4 {
		return s.profile.Get(), nil
	}

	s.loading.Set(true)
	s.lastErr.Set("")
	defer s.loading.Set(false)

	p, err := s.api.CompleteOnboarding(ctx, step, s.profile.Get())
	if err != nil {
		s.lastErr.Set(errMessage(err, "Failed to save onboarding step"))
		return nil, err
	}
	s.profile.Set(p)
	return p, nil
}

func errMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
