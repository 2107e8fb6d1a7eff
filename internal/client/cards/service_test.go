package cards

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	list []Card
	err  error

	updateID    string
	updatePatch Patch
	updated     *Card

	regenerated *Card
}

func (f *fakeAPI) ListCards(ctx context.Context) ([]Card, error) {
	return f.list, f.err
}

func (f *fakeAPI) GenerateCards(ctx context.Context) ([]Card, error) {
	return f.list, f.err
}

func (f *fakeAPI) RegenerateCard(ctx context.Context, cardID string) (*Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.regenerated, nil
}

func (f *fakeAPI) UpdateCard(ctx context.Context, cardID string, patch Patch) (*Card, error) {
	f.updateID = cardID
	f.updatePatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func TestService_LoadReplacesList(t *testing.T) {
	f := &fakeAPI{list: []Card{{ID: "c1"}, {ID: "c2"}}}
	s := NewService(f, nil)

	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Cards().Get(), 2)
	require.NoError(t, s.Err().Get())
}

func TestService_LoadFailureRecordsError(t *testing.T) {
	wantErr := errors.New("boom")
	f := &fakeAPI{err: wantErr}
	s := NewService(f, nil)

	err := s.Load(context.Background())
	require.ErrorIs(t, err, wantErr)
	require.ErrorIs(t, s.Err().Get(), wantErr)
	require.Empty(t, s.Cards().Get())
	require.False(t, s.Loading().Get())
}

func TestService_DismissPatchesStatusAndSwapsCard(t *testing.T) {
	f := &fakeAPI{
		list:    []Card{{ID: "c1", Status: StatusActive}, {ID: "c2", Status: StatusActive}},
		updated: &Card{ID: "c1", Status: StatusDismissed},
	}
	s := NewService(f, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Dismiss(context.Background(), "c1"))

	require.Equal(t, "c1", f.updateID)
	require.NotNil(t, f.updatePatch.Status)
	require.Equal(t, StatusDismissed, *f.updatePatch.Status)

	list := s.Cards().Get()
	require.Len(t, list, 2)
	require.Equal(t, StatusDismissed, list[0].Status)
	require.Equal(t, StatusActive, list[1].Status)
}

func TestService_EditSendsContent(t *testing.T) {
	f := &fakeAPI{
		list:    []Card{{ID: "c1", Content: "old"}},
		updated: &Card{ID: "c1", Content: "new", IsEdited: true},
	}
	s := NewService(f, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Edit(context.Background(), "c1", "new"))

	require.NotNil(t, f.updatePatch.Content)
	require.Equal(t, "new", *f.updatePatch.Content)
	require.True(t, s.Cards().Get()[0].IsEdited)
}

func TestService_RegenerateSwapsContent(t *testing.T) {
	f := &fakeAPI{
		list:        []Card{{ID: "c1", Content: "old"}},
		regenerated: &Card{ID: "c1", Content: "fresh"},
	}
	s := NewService(f, nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Regenerate(context.Background(), "c1"))
	require.Equal(t, "fresh", s.Cards().Get()[0].Content)
}

func TestService_UpdateFailureKeepsList(t *testing.T) {
	f := &fakeAPI{list: []Card{{ID: "c1", Status: StatusActive}}}
	s := NewService(f, nil)
	require.NoError(t, s.Load(context.Background()))

	wantErr := errors.New("boom")
	f.err = wantErr
	require.ErrorIs(t, s.Dismiss(context.Background(), "c1"), wantErr)

	require.Equal(t, StatusActive, s.Cards().Get()[0].Status)
	require.ErrorIs(t, s.Err().Get(), wantErr)
}

func TestService_ActiveAndScheduledFilters(t *testing.T) {
	f := &fakeAPI{list: []Card{
		{ID: "c1", Status: StatusActive},
		{ID: "c2", Status: StatusScheduled},
		{ID: "c3", Status: StatusDismissed},
		{ID: "c4", Status: StatusActive},
	}}
	s := NewService(f, nil)
	require.NoError(t, s.Load(context.Background()))

	require.Len(t, s.Active(), 2)
	require.Len(t, s.Scheduled(), 1)
}
