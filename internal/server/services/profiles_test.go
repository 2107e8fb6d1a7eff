package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/server/models"
	"github.com/dkrasnova/brandkit/internal/server/repositories/repomanager"
)

func strPtr(s string) *string { return &s }

func seedProfile(t *testing.T, repos repomanager.RepositoryManager, uid string) *models.Profile {
	t.Helper()
	p, err := repos.Profiles(nil).Create(context.Background(), &models.Profile{
		UID:      uid,
		Email:    uid + "@example.com",
		Keywords: []string{},
	})
	require.NoError(t, err)
	return p
}

func TestProfileService_Update(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)
	ctx := context.Background()
	seedProfile(t, repos, "u1")

	updated, err := svc.Update(ctx, "u1", ProfilePatch{
		Handle:   strPtr("dasha"),
		Keywords: []string{"design", "branding"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Handle)
	assert.Equal(t, "dasha", *updated.Handle)
	assert.Equal(t, []string{"design", "branding"}, updated.Keywords)

	// nil fields stay untouched
	updated, err = svc.Update(ctx, "u1", ProfilePatch{ContentType: strPtr("educational")})
	require.NoError(t, err)
	assert.Equal(t, "dasha", *updated.Handle)
	assert.Equal(t, "educational", *updated.ContentType)
}

func TestProfileService_Onboard(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)
	ctx := context.Background()
	seedProfile(t, repos, "u1")

	p, err := svc.Onboard(ctx, "u1", 1, &models.Profile{Handle: strPtr("dasha")})
	require.NoError(t, err)
	assert.Equal(t, 1, p.OnboardingStep)
	assert.False(t, p.OnboardingComplete)

	p, err = svc.Onboard(ctx, "u1", 4, &models.Profile{
		Handle:   strPtr("dasha"),
		Keywords: []string{"design"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, p.OnboardingStep)
	assert.True(t, p.OnboardingComplete)
	assert.Equal(t, []string{"design"}, p.Keywords)
}

func TestProfileService_OnboardStepOutOfRange(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)
	ctx := context.Background()
	seedProfile(t, repos, "u1")

	for _, step := range []int{0, 5, -1} {
		_, err := svc.Onboard(ctx, "u1", step, nil)
		require.ErrorIs(t, err, common.ErrInvalidArgument, "step %d", step)
	}
}

func TestProfileService_OnboardUnknownUser(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)

	_, err := svc.Onboard(context.Background(), "ghost", 1, nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfileService_GenerateInstructions(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)
	ctx := context.Background()
	seedProfile(t, repos, "u1")

	_, err := svc.Update(ctx, "u1", ProfilePatch{
		Handle:           strPtr("dasha"),
		ContentType:      strPtr("educational"),
		BrandDescription: strPtr("practical and warm"),
		Keywords:         []string{"design", "branding"},
	})
	require.NoError(t, err)

	p, err := svc.GenerateInstructions(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.AIInstructions)
	assert.Contains(t, *p.AIInstructions, "educational")
	assert.Contains(t, *p.AIInstructions, "dasha")
	assert.Contains(t, *p.AIInstructions, "practical and warm")
	assert.Contains(t, *p.AIInstructions, "design, branding")
}

func TestProfileService_LinkedIn(t *testing.T) {
	repos := repomanager.NewMemoryRepositoryManager()
	svc := NewProfileService(nil, repos, nil)
	ctx := context.Background()
	seedProfile(t, repos, "u1")

	connected, err := svc.LinkedInStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, connected)

	require.ErrorIs(t, svc.LinkedInConnect(ctx, "u1", "", "state"), common.ErrInvalidArgument)

	require.NoError(t, svc.LinkedInConnect(ctx, "u1", "oauth-code", "state"))
	connected, err = svc.LinkedInStatus(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, connected)

	require.NoError(t, svc.LinkedInDisconnect(ctx, "u1"))
	connected, err = svc.LinkedInStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, connected)
}
