package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/feedworks/feedctl/internal/config"
	"github.com/feedworks/feedctl/internal/resolver"
	"github.com/feedworks/feedctl/internal/sources"
	"github.com/feedworks/feedctl/internal/sources/mocks"
)

type staticStore struct {
	cfg   *config.Config
	loads int
}

func (s *staticStore) LoadOrCreate() (*config.Config, error) {
	s.loads++
	return s.cfg, nil
}

type mockFactory struct {
	source sources.PackageSource
}

func (f *mockFactory) CreateSource(sources.FeedDescriptor) (sources.PackageSource, error) {
	return f.source, nil
}

func newTestFacade(t *testing.T) (*Facade, *mocks.MockPackageSource, *staticStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockSource := mocks.NewMockPackageSource(ctrl)

	store := &staticStore{cfg: &config.Config{
		Feeds:      []config.FeedConfig{{Name: "official", Location: "/srv/feeds"}},
		ActiveFeed: "official",
	}}
	r := resolver.New(store, &mockFactory{source: mockSource}, nil, nil)
	return New(r), mockSource, store
}

func TestSearch_DelegatesVerbatim(t *testing.T) {
	t.Parallel()

	facade, mockSource, _ := newTestFacade(t)

	q := sources.SearchQuery{Term: "json", Take: 15}
	expected := []sources.Package{{ID: "jsonkit", Version: "1.2.0"}}
	ctx := context.Background()
	mockSource.EXPECT().Search(ctx, q).Return(expected, nil)

	got, err := facade.Search(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestSearch_PropagatesSourceErrors(t *testing.T) {
	t.Parallel()

	facade, mockSource, _ := newTestFacade(t)

	feedErr := errors.New("connection refused")
	mockSource.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, feedErr)

	_, err := facade.Search(context.Background(), sources.DefaultSearchQuery())
	assert.ErrorIs(t, err, feedErr)
}

func TestGetUpdates_Delegates(t *testing.T) {
	t.Parallel()

	facade, mockSource, _ := newTestFacade(t)

	installed := []sources.Package{{ID: "jsonkit", Version: "1.0.0"}}
	q := sources.UpdateQuery{IncludePrerelease: true}
	expected := []sources.Package{{ID: "jsonkit", Version: "1.2.0"}}
	mockSource.EXPECT().GetUpdates(installed, q).Return(expected, nil)

	got, err := facade.GetUpdates(installed, q)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestGetSpecificPackage_AbsenceIsNotAFeedFailure(t *testing.T) {
	t.Parallel()

	facade, mockSource, _ := newTestFacade(t)

	mockSource.EXPECT().GetPackage("ghost").Return(nil, sources.ErrPackageNotFound)

	_, err := facade.GetSpecificPackage("ghost")
	assert.ErrorIs(t, err, sources.ErrPackageNotFound)
}

func TestFacade_ResolvesLazilyExactlyOnce(t *testing.T) {
	t.Parallel()

	facade, mockSource, store := newTestFacade(t)

	assert.Equal(t, 0, store.loads, "construction must not resolve")

	mockSource.EXPECT().GetPackage("a").Return(&sources.Package{ID: "a", Version: "1.0.0"}, nil)
	mockSource.EXPECT().GetPackage("b").Return(&sources.Package{ID: "b", Version: "2.0.0"}, nil)

	_, err := facade.GetSpecificPackage("a")
	require.NoError(t, err)
	_, err = facade.GetSpecificPackage("b")
	require.NoError(t, err)

	assert.Equal(t, 1, store.loads, "queries after the first must hit the cached resolution")
}
