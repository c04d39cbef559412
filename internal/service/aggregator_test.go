package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
	"github.com/tomfleet/leaguesync/internal/repository/memory"
	"github.com/tomfleet/leaguesync/internal/statcache"
)

type fakeProvider struct {
	platform models.Platform
	leagues  map[string]*models.League
	rosters  map[string][]models.Roster
	slots    map[string][]models.MatchupSlot
	broken   map[string]bool
}

func (f *fakeProvider) Platform() models.Platform { return f.platform }

func (f *fakeProvider) FetchLeague(ctx context.Context, leagueID string) (*models.League, error) {
	if f.broken[leagueID] {
		return nil, fmt.Errorf("league %s: %w", leagueID, fferr.ErrTransport)
	}
	league, ok := f.leagues[leagueID]
	if !ok {
		return nil, fmt.Errorf("league %s: %w", leagueID, fferr.ErrNotFound)
	}
	return league, nil
}

func (f *fakeProvider) FetchRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return f.rosters[leagueID], nil
}

func (f *fakeProvider) FetchUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	return nil, nil
}

func (f *fakeProvider) FetchMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupSlot, error) {
	slots := f.slots[leagueID]
	if len(slots) == 0 {
		return nil, fmt.Errorf("matchup schedule: %w", fferr.ErrNotFound)
	}
	return slots, nil
}

func (f *fakeProvider) FetchDraftPicks(ctx context.Context, leagueID string) ([]models.RawDraftPick, error) {
	return nil, fmt.Errorf("draft: %w", fferr.ErrNotFound)
}

func (f *fakeProvider) ResolveUserIdentity(ctx context.Context, credential string) (string, error) {
	return "", fmt.Errorf("user lookup: %w", fferr.ErrUnsupported)
}

type fakeDirectory struct{}

func (fakeDirectory) LookupPlayer(ctx context.Context, playerID string) (*models.PlayerRecord, error) {
	return &models.PlayerRecord{ID: playerID, FullName: "Player " + playerID}, nil
}

type staticSource struct{ table models.StatTable }

func (s staticSource) FetchWeeklyStats(ctx context.Context, week int, season string) (models.StatTable, error) {
	return s.table, nil
}

func newTestService(provider *fakeProvider) *AggregatorService {
	cache := statcache.New(staticSource{table: models.StatTable{
		"qb1": {"pass_yd": 300, "pass_td": 2},
		"qb2": {"pass_yd": 100},
	}}, time.Minute)

	return NewAggregatorService(
		map[models.Platform]fantasy.Provider{models.PlatformSleeper: provider},
		fakeDirectory{},
		cache,
		memory.NewRepository(),
		nil,
		40,
	)
}

func newLeague(id string) *models.League {
	return &models.League{
		ID:        id,
		Platform:  models.PlatformSleeper,
		Season:    "2025",
		Week:      7,
		TeamCount: 2,
		ScoringConfig: map[string]float64{
			"pass_yd": 0.04,
			"pass_td": 4,
		},
	}
}

func newProvider() *fakeProvider {
	rosters := []models.Roster{
		{ID: 1, OwnerID: "u1", Players: []string{"qb1"}, Starters: []string{"qb1"}},
		{ID: 2, OwnerID: "u2", Players: []string{"qb2"}, Starters: []string{"qb2"}},
	}
	slots := []models.MatchupSlot{
		{MatchupID: 1, RosterID: 1},
		{MatchupID: 1, RosterID: 2},
	}
	return &fakeProvider{
		platform: models.PlatformSleeper,
		leagues:  map[string]*models.League{"L1": newLeague("L1"), "L2": newLeague("L2")},
		rosters:  map[string][]models.Roster{"L1": rosters, "L2": rosters},
		slots:    map[string][]models.MatchupSlot{"L1": slots, "L2": slots},
		broken:   map[string]bool{},
	}
}

func TestRefreshAll_FailuresAreIsolated(t *testing.T) {
	provider := newProvider()
	provider.broken["L2"] = true
	svc := newTestService(provider)

	results := svc.RefreshAll(context.Background(), []LeagueRef{
		{Platform: models.PlatformSleeper, ID: "L1"},
		{Platform: models.PlatformSleeper, ID: "L2"},
	})

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Snapshot)
	assert.ErrorIs(t, results[1].Err, fferr.ErrTransport)
	assert.Nil(t, results[1].Snapshot)
}

func TestRefreshLeague_StoresSnapshotAndHistory(t *testing.T) {
	provider := newProvider()
	svc := newTestService(provider)

	snapshot, err := svc.RefreshLeague(context.Background(), LeagueRef{Platform: models.PlatformSleeper, ID: "L1"})
	require.NoError(t, err)

	stored := svc.repo.GetSnapshot("L1")
	require.NotNil(t, stored)
	assert.Equal(t, snapshot.RefreshID, stored.RefreshID)

	history := svc.repo.ScoreHistory("L1", 1)
	require.Len(t, history, 1)
	assert.InDelta(t, 20.0, history[0], 1e-9)
}

func TestRefreshLeague_UnknownPlatform(t *testing.T) {
	svc := newTestService(newProvider())

	_, err := svc.RefreshLeague(context.Background(), LeagueRef{Platform: "yahoo", ID: "L1"})
	assert.ErrorIs(t, err, fferr.ErrUnsupported)
}

func TestDraft_ReconstructsFromRosters(t *testing.T) {
	provider := newProvider()
	svc := newTestService(provider)

	picks, err := svc.Draft(context.Background(), LeagueRef{Platform: models.PlatformSleeper, ID: "L1"})
	require.NoError(t, err)
	require.Len(t, picks, 2)
	for _, pick := range picks {
		assert.True(t, pick.Reconstructed)
	}
}
