package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
)

// IDMapper converts ESPN player IDs to the canonical directory ID space.
// The Sleeper player directory implements it.
type IDMapper interface {
	CanonicalIDForEspn(espnID int) (string, bool)
}

// API implements fantasy.Provider for ESPN, the league/settings-centric
// platform. All payloads are converted to the canonical model here; nothing
// ESPN-shaped escapes this package.
type API struct {
	client *Client
	ids    IDMapper
}

func NewAPI(client *Client, ids IDMapper) *API {
	return &API{client: client, ids: ids}
}

func (a *API) Platform() models.Platform {
	return models.PlatformESPN
}

func (a *API) FetchLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var raw models.EspnLeagueResponse
	endpoint := fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, leagueID)
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}

	return &models.League{
		ID:            leagueID,
		Platform:      models.PlatformESPN,
		Name:          raw.Settings.Name,
		Season:        strconv.Itoa(raw.SeasonID),
		Week:          raw.Status.CurrentMatchupPeriod,
		TeamCount:     raw.Settings.Size,
		ScoringConfig: convertScoringItems(raw.Settings.ScoringSettings.ScoringItems),
	}, nil
}

func (a *API) FetchRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var raw models.EspnLeagueResponse
	endpoint := fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, leagueID)
	params := map[string]string{
		"view": "mRoster,mTeam",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching rosters for league %s: %w", leagueID, err)
	}

	rosters := make([]models.Roster, len(raw.Teams))
	for i, team := range raw.Teams {
		roster := models.Roster{
			ID:        team.ID,
			OwnerID:   team.PrimaryOwner,
			Wins:      team.Record.Overall.Wins,
			Losses:    team.Record.Overall.Losses,
			Ties:      team.Record.Overall.Ties,
			PointsFor: team.Record.Overall.PointsFor,
		}
		for _, entry := range team.Roster.Entries {
			id := a.canonicalPlayerID(entry.PlayerPoolEntry.Player.ID)
			roster.Players = append(roster.Players, id)
			if isStartingLineup(entry.LineupSlotID) {
				roster.Starters = append(roster.Starters, id)
			}
		}
		rosters[i] = roster
	}
	return rosters, nil
}

func (a *API) FetchUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	var raw models.EspnLeagueResponse
	endpoint := fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, leagueID)
	params := map[string]string{
		"view": "mTeam",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching users for league %s: %w", leagueID, err)
	}

	teamNames := make(map[string]string, len(raw.Teams))
	for _, team := range raw.Teams {
		teamNames[team.PrimaryOwner] = team.Name
	}

	users := make([]models.LeagueUser, len(raw.Members))
	for i, m := range raw.Members {
		users[i] = models.LeagueUser{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			TeamName:    teamNames[m.ID],
		}
	}
	return users, nil
}

func (a *API) FetchMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupSlot, error) {
	var raw models.EspnLeagueResponse
	endpoint := fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, leagueID)
	params := map[string]string{
		"view": "mScoreboard",
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(ctx, endpoint, params, headers, &raw); err != nil {
		return nil, fmt.Errorf("fetching matchups for league %s week %d: %w", leagueID, week, err)
	}

	var slots []models.MatchupSlot
	for _, match := range raw.Schedule {
		if match.Home != nil {
			slots = append(slots, models.MatchupSlot{MatchupID: match.ID, RosterID: match.Home.TeamID})
		}
		if match.Away != nil {
			slots = append(slots, models.MatchupSlot{MatchupID: match.ID, RosterID: match.Away.TeamID})
		}
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("matchup schedule for league %s week %d: %w", leagueID, week, fferr.ErrNotFound)
	}
	return slots, nil
}

func (a *API) FetchDraftPicks(ctx context.Context, leagueID string) ([]models.RawDraftPick, error) {
	var raw models.EspnLeagueResponse
	endpoint := fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, leagueID)
	params := map[string]string{
		"view": "mDraftDetail",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("fetching draft for league %s: %w", leagueID, err)
	}
	if raw.DraftDetail == nil || !raw.DraftDetail.Drafted || len(raw.DraftDetail.Picks) == 0 {
		return nil, fmt.Errorf("draft for league %s: %w", leagueID, fferr.ErrNotFound)
	}

	picks := make([]models.RawDraftPick, len(raw.DraftDetail.Picks))
	for i, p := range raw.DraftDetail.Picks {
		picks[i] = models.RawDraftPick{
			OverallPick: p.OverallPickNumber,
			RosterID:    p.TeamID,
			PlayerID:    a.canonicalPlayerID(p.PlayerID),
		}
	}
	return picks, nil
}

// ResolveUserIdentity is unsupported: ESPN has no public username lookup.
// Callers fall back to matching the credential against league members.
func (a *API) ResolveUserIdentity(ctx context.Context, credential string) (string, error) {
	return "", fmt.Errorf("espn user lookup: %w", fferr.ErrUnsupported)
}

func (a *API) canonicalPlayerID(espnID int) string {
	if id, ok := a.ids.CanonicalIDForEspn(espnID); ok {
		return id
	}
	// No directory mapping; the player simply scores zero.
	return fmt.Sprintf("espn-%d", espnID)
}

func isStartingLineup(slotID int) bool {
	startingSlots := map[int]bool{
		0:  true,  // QB
		2:  true,  // RB
		4:  true,  // WR
		6:  true,  // TE
		16: true,  // D/ST
		17: true,  // K
		20: false, // Bench
		21: false, // IR
		23: true,  // FLEX
	}
	return startingSlots[slotID]
}
