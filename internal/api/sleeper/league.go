package sleeper

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
)

// API implements fantasy.Provider, fantasy.StatsSource, and
// fantasy.PlayerDirectory on top of the raw Sleeper client. Sleeper is the
// roster/stat-centric platform: it owns the weekly stat table and the player
// directory the whole engine keys on.
type API struct {
	client *Client

	mu      sync.RWMutex
	players map[string]models.SleeperPlayer
	byEspn  map[int]string
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) Platform() models.Platform {
	return models.PlatformSleeper
}

func (a *API) FetchLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var raw models.SleeperLeague
	endpoint := fmt.Sprintf("/league/%s", leagueID)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	if raw.LeagueID == "" {
		return nil, fmt.Errorf("league %s: %w", leagueID, fferr.ErrNotFound)
	}

	state, err := a.fetchState(ctx)
	if err != nil {
		return nil, err
	}

	return &models.League{
		ID:            raw.LeagueID,
		Platform:      models.PlatformSleeper,
		Name:          raw.Name,
		Season:        raw.Season,
		Week:          state.Week,
		TeamCount:     raw.TotalRosters,
		ScoringConfig: raw.ScoringSettings,
	}, nil
}

func (a *API) FetchRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var raw []models.SleeperRoster
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching rosters for league %s: %w", leagueID, err)
	}

	rosters := make([]models.Roster, len(raw))
	for i, r := range raw {
		rosters[i] = models.Roster{
			ID:        r.RosterID,
			OwnerID:   r.OwnerID,
			Players:   r.Players,
			Starters:  r.Starters,
			Wins:      r.Settings.Wins,
			Losses:    r.Settings.Losses,
			Ties:      r.Settings.Ties,
			PointsFor: r.Settings.Fpts + r.Settings.FptsDecim/100,
		}
	}
	return rosters, nil
}

func (a *API) FetchUsers(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	var raw []models.SleeperUser
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching users for league %s: %w", leagueID, err)
	}

	users := make([]models.LeagueUser, len(raw))
	for i, u := range raw {
		users[i] = models.LeagueUser{
			ID:          u.UserID,
			DisplayName: u.DisplayName,
			TeamName:    u.Metadata.TeamName,
		}
	}
	return users, nil
}

func (a *API) FetchMatchups(ctx context.Context, leagueID string, week int) ([]models.MatchupSlot, error) {
	var raw []models.SleeperMatchup
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching matchups for league %s week %d: %w", leagueID, week, err)
	}

	slots := make([]models.MatchupSlot, 0, len(raw))
	for _, m := range raw {
		// A zero matchup ID means the roster is not scheduled this week.
		// Leagues running alternative formats report it for every roster.
		if m.MatchupID == 0 {
			continue
		}
		slots = append(slots, models.MatchupSlot{
			MatchupID: m.MatchupID,
			RosterID:  m.RosterID,
		})
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("matchup schedule for league %s week %d: %w", leagueID, week, fferr.ErrNotFound)
	}
	return slots, nil
}

func (a *API) FetchDraftPicks(ctx context.Context, leagueID string) ([]models.RawDraftPick, error) {
	var drafts []models.SleeperDraft
	endpoint := fmt.Sprintf("/league/%s/drafts", leagueID)
	if err := a.client.Get(ctx, endpoint, &drafts); err != nil {
		return nil, fmt.Errorf("fetching drafts for league %s: %w", leagueID, err)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("draft for league %s: %w", leagueID, fferr.ErrNotFound)
	}

	var raw []models.SleeperDraftPick
	endpoint = fmt.Sprintf("/draft/%s/picks", drafts[0].DraftID)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching picks for draft %s: %w", drafts[0].DraftID, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("picks for draft %s: %w", drafts[0].DraftID, fferr.ErrNotFound)
	}

	picks := make([]models.RawDraftPick, len(raw))
	for i, p := range raw {
		picks[i] = models.RawDraftPick{
			OverallPick: p.PickNo,
			RosterID:    p.RosterID,
			PlayerID:    p.PlayerID,
		}
	}
	return picks, nil
}

func (a *API) ResolveUserIdentity(ctx context.Context, credential string) (string, error) {
	var user models.SleeperUser
	endpoint := fmt.Sprintf("/user/%s", credential)
	if err := a.client.Get(ctx, endpoint, &user); err != nil {
		return "", fmt.Errorf("resolving user %q: %w", credential, err)
	}
	if user.UserID == "" {
		return "", fmt.Errorf("user %q: %w", credential, fferr.ErrNotFound)
	}
	return user.UserID, nil
}

// FetchWeeklyStats returns the raw league-independent stat table for one
// (week, season). Every league's scoring pass reads from the same table.
func (a *API) FetchWeeklyStats(ctx context.Context, week int, season string) (models.StatTable, error) {
	var raw map[string]map[string]float64
	endpoint := fmt.Sprintf("/stats/nfl/regular/%s/%d", season, week)
	if err := a.client.Get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetching stats for week %d season %s: %w", week, season, err)
	}

	table := make(models.StatTable, len(raw))
	for playerID, stats := range raw {
		table[playerID] = models.StatVector(stats)
	}
	return table, nil
}

// LoadPlayerDirectory fetches the full NFL player directory. The payload is
// large, so it is loaded once at startup and held in memory; the ESPN ID
// index built here is what lets ESPN rosters share Sleeper's stat table.
func (a *API) LoadPlayerDirectory(ctx context.Context) error {
	var raw map[string]models.SleeperPlayer
	if err := a.client.Get(ctx, "/players/nfl", &raw); err != nil {
		return fmt.Errorf("loading player directory: %w", err)
	}

	byEspn := make(map[int]string)
	for id, p := range raw {
		if p.EspnID != 0 {
			byEspn[p.EspnID] = id
		}
	}

	a.mu.Lock()
	a.players = raw
	a.byEspn = byEspn
	a.mu.Unlock()
	return nil
}

func (a *API) LookupPlayer(ctx context.Context, playerID string) (*models.PlayerRecord, error) {
	a.mu.RLock()
	p, ok := a.players[playerID]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, fferr.ErrNotFound)
	}

	name := p.FullName
	if name == "" {
		name = fmt.Sprintf("%s %s", p.FirstName, p.LastName)
	}
	return &models.PlayerRecord{
		ID:       p.PlayerID,
		FullName: name,
		Position: p.Position,
		ProTeam:  p.Team,
	}, nil
}

// CanonicalIDForEspn maps an ESPN player ID onto the canonical directory ID.
func (a *API) CanonicalIDForEspn(espnID int) (string, bool) {
	a.mu.RLock()
	id, ok := a.byEspn[espnID]
	a.mu.RUnlock()
	return id, ok
}

func (a *API) fetchState(ctx context.Context) (*models.SleeperState, error) {
	var state models.SleeperState
	if err := a.client.Get(ctx, "/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("fetching nfl state: %w", err)
	}
	return &state, nil
}
