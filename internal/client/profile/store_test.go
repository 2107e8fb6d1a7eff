package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkrasnova/brandkit/internal/common"
)

func strptr(s string) *string { return &s }

// fakeAPI implements API and counts network calls so tests can assert that
// steps 1–3 never touch the wire.
type fakeAPI struct {
	getRet *Profile
	getErr error

	updateRet *Profile
	updateErr error

	onboardRet *Profile
	onboardErr error

	getCalls     int
	updateCalls  int
	onboardCalls int

	lastPatch    Patch
	lastStep     int
	lastSnapshot *Profile
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*Profile, error) {
	f.getCalls++
	return f.getRet, f.getErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, patch Patch) (*Profile, error) {
	f.updateCalls++
	f.lastPatch = patch
	return f.updateRet, f.updateErr
}

func (f *fakeAPI) CompleteOnboarding(ctx context.Context, step int, snapshot *Profile) (*Profile, error) {
	f.onboardCalls++
	f.lastStep = step
	f.lastSnapshot = snapshot
	return f.onboardRet, f.onboardErr
}

func (f *fakeAPI) networkCalls() int { return f.getCalls + f.updateCalls + f.onboardCalls }

func serverProfile() *Profile {
	return &Profile{
		ID:        "p1",
		UID:       "u1",
		Email:     "a@b.c",
		Keywords:  []string{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestFetch_ReplacesSnapshotWholesale(t *testing.T) {
	api := &fakeAPI{getRet: serverProfile()}
	s := NewStore(api, nil)

	p, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "p1", s.Current().Get().ID)
	require.False(t, s.Loading().Get())
}

func TestFetch_FailureRecordsAndReraises(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("backend down")}
	s := NewStore(api, nil)

	_, err := s.Fetch(context.Background())
	require.Error(t, err)
	require.Nil(t, s.Current().Get())
	require.Equal(t, "backend down", s.Err().Get())
	require.False(t, s.Loading().Get())
}

func TestUpdate_UsesServerEchoNotLocalValue(t *testing.T) {
	// The server normalizes the handle; the snapshot must reflect the
	// persisted value, not the client's submission.
	echoed := serverProfile()
	echoed.Handle = strptr("normalized-x")
	api := &fakeAPI{updateRet: echoed}
	s := NewStore(api, nil)

	p, err := s.Update(context.Background(), Patch{Handle: strptr("X")})
	require.NoError(t, err)
	require.Equal(t, "normalized-x", *p.Handle)
	require.Equal(t, "normalized-x", *s.Current().Get().Handle)
}

func TestUpdate_FailureLeavesSnapshotUntouched(t *testing.T) {
	api := &fakeAPI{getRet: serverProfile()}
	s := NewStore(api, nil)
	_, err := s.Fetch(context.Background())
	require.NoError(t, err)

	api.updateErr = errors.New("422")
	_, err = s.Update(context.Background(), Patch{Handle: strptr("x")})
	require.Error(t, err)
	require.Nil(t, s.Current().Get().Handle)
	require.Equal(t, "422", s.Err().Get())
}

func TestCompleteStep_EarlyStepsAreLocalOnly(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, nil)

	for step := 1; step <= 3; step++ {
		p, err := s.CompleteStep(context.Background(), step, Patch{})
		require.NoError(t, err)
		require.Equal(t, step, p.OnboardingStep)
		require.Equal(t, 0, api.networkCalls())
	}
}

func TestCompleteStep_SynthesizesPlaceholderWhenNoSnapshot(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, nil)
	require.Nil(t, s.Current().Get())

	p, err := s.CompleteStep(context.Background(), 1, Patch{Handle: strptr("maria")})
	require.NoError(t, err)
	require.Equal(t, "maria", *p.Handle)
	require.Equal(t, 1, p.OnboardingStep)
	require.False(t, p.OnboardingComplete)
}

func TestCompleteStep_StagingNeverSetsCompletionFlag(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, nil)

	_, err := s.CompleteStep(context.Background(), 2, Patch{ContentType: strptr("thought-leadership")})
	require.NoError(t, err)
	require.False(t, s.IsOnboardingComplete())
	require.Equal(t, 2, s.OnboardingStep())
}

func TestCompleteStep_FinalStepSubmitsAccumulatedFields(t *testing.T) {
	done := serverProfile()
	done.OnboardingStep = 4
	done.OnboardingComplete = true
	api := &fakeAPI{onboardRet: done}
	s := NewStore(api, nil)

	_, err := s.CompleteStep(context.Background(), 1, Patch{Handle: strptr("maria")})
	require.NoError(t, err)
	_, err = s.CompleteStep(context.Background(), 2, Patch{ContentType: strptr("educational")})
	require.NoError(t, err)
	_, err = s.CompleteStep(context.Background(), 3, Patch{BrandDescription: strptr("calm, direct")})
	require.NoError(t, err)

	p, err := s.CompleteStep(context.Background(), 4, Patch{Keywords: []string{"golang", "saas"}})
	require.NoError(t, err)

	require.Equal(t, 1, api.onboardCalls)
	require.Equal(t, 4, api.lastStep)
	// The submitted snapshot carries everything staged in steps 1–3.
	require.Equal(t, "maria", *api.lastSnapshot.Handle)
	require.Equal(t, "educational", *api.lastSnapshot.ContentType)
	require.Equal(t, "calm, direct", *api.lastSnapshot.BrandDescription)
	require.Equal(t, []string{"golang", "saas"}, api.lastSnapshot.Keywords)

	require.True(t, p.OnboardingComplete)
	require.Equal(t, 4, p.OnboardingStep)
	require.True(t, s.IsOnboardingComplete())
}

func TestCompleteStep_FinalStepFailureKeepsOptimisticData(t *testing.T) {
	api := &fakeAPI{onboardErr: errors.New("503")}
	s := NewStore(api, nil)

	_, err := s.CompleteStep(context.Background(), 4, Patch{Keywords: []string{"golang"}})
	require.Error(t, err)

	snap := s.Current().Get()
	require.Equal(t, 4, snap.OnboardingStep)
	require.Equal(t, []string{"golang"}, snap.Keywords)
	require.False(t, snap.OnboardingComplete)
	require.Equal(t, "503", s.Err().Get())

	// A retry resubmits the same accumulated fields.
	done := serverProfile()
	done.OnboardingStep = 4
	done.OnboardingComplete = true
	api.onboardErr = nil
	api.onboardRet = done

	_, err = s.CompleteStep(context.Background(), 4, Patch{})
	require.NoError(t, err)
	require.Equal(t, []string{"golang"}, api.lastSnapshot.Keywords)
}

func TestCompleteStep_RejectsOutOfRangeSteps(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, nil)

	for _, step := range []int{0, -1, 5} {
		_, err := s.CompleteStep(context.Background(), step, Patch{})
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	}
	require.Nil(t, s.Current().Get())
	require.Equal(t, 0, api.networkCalls())
}

func TestDerivedValues_TrackSnapshot(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, nil)

	require.Equal(t, 0, s.OnboardingStep())
	require.False(t, s.IsOnboardingComplete())

	var steps []int
	s.Step().Subscribe(func(v int) { steps = append(steps, v) })

	_, err := s.CompleteStep(context.Background(), 1, Patch{})
	require.NoError(t, err)
	_, err = s.CompleteStep(context.Background(), 2, Patch{})
	require.NoError(t, err)

	require.Equal(t, []int{1, 2}, steps)
}

func TestSeed_StagesPlaceholderForIdentity(t *testing.T) {
	s := NewStore(&fakeAPI{}, nil)

	s.Seed("u7", "new@b.c")

	p := s.Current().Get()
	require.Equal(t, "u7", p.UID)
	require.Equal(t, "new@b.c", p.Email)
	require.Equal(t, 0, p.OnboardingStep)
	require.False(t, p.OnboardingComplete)
}
