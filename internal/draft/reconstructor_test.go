package draft

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
)

type fakeProvider struct {
	picks   []models.RawDraftPick
	rosters []models.Roster
}

func (f *fakeProvider) Platform() models.Platform { return models.PlatformSleeper }

func (f *fakeProvider) FetchLeague(ctx context.Context, leagueID string) (*models.League, error) {
	return nil, fferr.ErrNotFound
}

func (f *fakeProvider) FetchRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return f.rosters, nil
}

func (f *fakeProvider) FetchUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	return nil, nil
}

func (f *fakeProvider) FetchMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupSlot, error) {
	return nil, fferr.ErrNotFound
}

func (f *fakeProvider) FetchDraftPicks(ctx context.Context, leagueID string) ([]models.RawDraftPick, error) {
	if f.picks == nil {
		return nil, fmt.Errorf("draft: %w", fferr.ErrNotFound)
	}
	return f.picks, nil
}

func (f *fakeProvider) ResolveUserIdentity(ctx context.Context, credential string) (string, error) {
	return "", fferr.ErrUnsupported
}

type fakeDirectory struct {
	missing map[string]bool
}

func (d *fakeDirectory) LookupPlayer(ctx context.Context, playerID string) (*models.PlayerRecord, error) {
	if d.missing[playerID] {
		return nil, fmt.Errorf("player %s: %w", playerID, fferr.ErrNotFound)
	}
	return &models.PlayerRecord{ID: playerID, FullName: "Player " + playerID}, nil
}

func TestSlotForPick(t *testing.T) {
	cases := []struct {
		pick, teamCount, round, slot int
	}{
		{1, 12, 1, 1},
		{12, 12, 1, 12},
		{13, 12, 2, 12}, // snake reversal: round 2 starts at the last slot
		{24, 12, 2, 1},
		{25, 12, 3, 1},
		{7, 10, 1, 7},
		{14, 10, 2, 7},
	}
	for _, c := range cases {
		round, slot := SlotForPick(c.pick, c.teamCount)
		assert.Equal(t, c.round, round, "pick %d", c.pick)
		assert.Equal(t, c.slot, slot, "pick %d", c.pick)
	}
}

func TestPickForSlot_InvertsSlotForPick(t *testing.T) {
	const teamCount = 12
	for pick := 1; pick <= teamCount*15; pick++ {
		round, slot := SlotForPick(pick, teamCount)
		assert.Equal(t, pick, PickForSlot(round, slot, teamCount))
	}
}

func TestReconstruct_AuthoritativeMode(t *testing.T) {
	const teamCount = 4
	const rounds = 3

	var raw []models.RawDraftPick
	for pick := 1; pick <= teamCount*rounds; pick++ {
		raw = append(raw, models.RawDraftPick{
			OverallPick: pick,
			RosterID:    (pick % teamCount) + 1,
			PlayerID:    fmt.Sprintf("p%d", pick),
		})
	}

	r := NewReconstructor(&fakeProvider{picks: raw}, &fakeDirectory{})
	league := &models.League{ID: "L1", TeamCount: teamCount}

	picks, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)
	require.Len(t, picks, teamCount*rounds)

	for i, pick := range picks {
		assert.Equal(t, i+1, pick.OverallPick)
		assert.False(t, pick.Reconstructed)

		round, slot := SlotForPick(pick.OverallPick, teamCount)
		assert.Equal(t, round, pick.Round)
		assert.Equal(t, slot, pick.DraftSlot)
		assert.NotEmpty(t, pick.PlayerName)
	}
}

func TestReconstruct_AuthoritativeDerivesMissingTeamCount(t *testing.T) {
	const teamCount = 4
	const rounds = 2

	var raw []models.RawDraftPick
	for pick := 1; pick <= teamCount*rounds; pick++ {
		raw = append(raw, models.RawDraftPick{
			OverallPick: pick,
			RosterID:    (pick % teamCount) + 1,
			PlayerID:    fmt.Sprintf("p%d", pick),
		})
	}

	r := NewReconstructor(&fakeProvider{picks: raw}, &fakeDirectory{})
	// A payload without a league size must not derail the reconstruction;
	// the size follows from the distinct teams that drafted.
	league := &models.League{ID: "L1", TeamCount: 0}

	picks, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)
	require.Len(t, picks, teamCount*rounds)

	for _, pick := range picks {
		round, slot := SlotForPick(pick.OverallPick, teamCount)
		assert.Equal(t, round, pick.Round, "pick %d", pick.OverallPick)
		assert.Equal(t, slot, pick.DraftSlot, "pick %d", pick.OverallPick)
	}
}

func TestReconstruct_DropsUnresolvablePicks(t *testing.T) {
	raw := []models.RawDraftPick{
		{OverallPick: 1, RosterID: 1, PlayerID: "known"},
		{OverallPick: 2, RosterID: 2, PlayerID: "ghost"},
		{OverallPick: 3, RosterID: 3, PlayerID: "known2"},
	}

	r := NewReconstructor(
		&fakeProvider{picks: raw},
		&fakeDirectory{missing: map[string]bool{"ghost": true}},
	)
	league := &models.League{ID: "L1", TeamCount: 3}

	picks, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, 1, picks[0].OverallPick)
	assert.Equal(t, 3, picks[1].OverallPick)
}

func TestReconstruct_FallbackFromRosters(t *testing.T) {
	const teamCount = 3
	const rounds = 4

	var rosters []models.Roster
	// Roster IDs deliberately out of order; draft position assignment must
	// not depend on upstream ordering.
	for _, id := range []int{2, 3, 1} {
		roster := models.Roster{ID: id}
		for round := 1; round <= rounds; round++ {
			roster.Players = append(roster.Players, fmt.Sprintf("r%dp%d", id, round))
		}
		rosters = append(rosters, roster)
	}

	r := NewReconstructor(&fakeProvider{rosters: rosters}, &fakeDirectory{})
	league := &models.League{ID: "L1", TeamCount: teamCount}

	picks, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)
	require.Len(t, picks, teamCount*rounds)

	// Exactly one pick per overall number, contiguous, no duplicates.
	seen := make(map[int]bool)
	for i, pick := range picks {
		assert.Equal(t, i+1, pick.OverallPick)
		assert.False(t, seen[pick.OverallPick])
		seen[pick.OverallPick] = true
		assert.True(t, pick.Reconstructed)
	}

	// Draft position follows roster ID order: roster 1 picks first overall,
	// and the snake sends it last in round 2.
	assert.Equal(t, 1, picks[0].RosterID)
	assert.Equal(t, "r1p1", picks[0].PlayerID)
	assert.Equal(t, 1, picks[2*teamCount-1].RosterID)
}

func TestReconstruct_FallbackIsDeterministic(t *testing.T) {
	rosters := []models.Roster{
		{ID: 7, Players: []string{"a", "b"}},
		{ID: 3, Players: []string{"c", "d"}},
	}

	r := NewReconstructor(&fakeProvider{rosters: rosters}, &fakeDirectory{})
	league := &models.League{ID: "L1", TeamCount: 2}

	first, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)
	second, err := r.Reconstruct(context.Background(), league)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
