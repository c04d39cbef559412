// Package assembler drives one league's refresh: rosters, users, the shared
// stat table, scoring, and matchup pairing, emitting one canonical snapshot.
//
// An Assembler is constructed fresh per (league, week, season) refresh and
// owns its state exclusively. Nothing here is shared between leagues; the two
// assemblers refreshing concurrently touch only the stat cache, which handles
// its own coalescing.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
	"github.com/tomfleet/leaguesync/internal/scoring"
	"github.com/tomfleet/leaguesync/internal/statcache"
)

// Phase tracks where a refresh cycle is. A failed refresh publishes nothing.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetchingRosters
	PhaseFetchingStats
	PhaseScoring
	PhaseAssembled
	PhaseFailed
)

type Config struct {
	League     *models.League
	Week       int
	Provider   fantasy.Provider
	Stats      *statcache.Cache
	Credential string

	// Denylist defaults to scoring.DefaultDenylist when zero.
	Denylist scoring.Denylist

	// StdDevFor supplies a per-team score deviation; DefaultStdDev is used
	// when it is nil or returns 0.
	StdDevFor     func(rosterID int) float64
	DefaultStdDev float64
}

type Assembler struct {
	cfg       Config
	phase     Phase
	altFormat bool
	myUserID  string
}

// New returns a fresh assembler. Instances are single-use per refresh cycle.
func New(cfg Config) *Assembler {
	if cfg.Denylist.Version == "" {
		cfg.Denylist = scoring.DefaultDenylist
	}
	return &Assembler{cfg: cfg, phase: PhaseIdle}
}

func (a *Assembler) Phase() Phase {
	return a.phase
}

// IsAlternativeFormat reports whether the last refresh found no head-to-head
// schedule, meaning the league runs an elimination-style format and its
// snapshot carries a standings leaderboard instead of matchups.
func (a *Assembler) IsAlternativeFormat() bool {
	return a.altFormat
}

// Refresh runs one full cycle. On any unrecoverable fetch error the partial
// state is discarded and nothing is published.
func (a *Assembler) Refresh(ctx context.Context) (*models.LeagueSnapshot, error) {
	a.reset()
	snapshot, err := a.refresh(ctx)
	if err != nil {
		a.phase = PhaseFailed
		return nil, err
	}
	a.phase = PhaseAssembled
	return snapshot, nil
}

func (a *Assembler) reset() {
	a.phase = PhaseIdle
	a.altFormat = false
	a.myUserID = ""
}

func (a *Assembler) refresh(ctx context.Context) (*models.LeagueSnapshot, error) {
	league := a.cfg.League

	a.phase = PhaseFetchingRosters
	rosters, err := a.cfg.Provider.FetchRosters(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("refreshing league %s: %w", league.ID, err)
	}

	users, err := a.cfg.Provider.FetchUsers(ctx, league.ID)
	if err != nil {
		// Names degrade to "Unknown"; the refresh itself keeps going.
		slog.Warn("Failed to fetch league users", "league", league.ID, "error", err)
		users = nil
	}

	a.myUserID = a.resolveIdentity(ctx, users)

	slots, err := a.cfg.Provider.FetchMatchups(ctx, league.ID, a.cfg.Week)
	if err != nil {
		if !errors.Is(err, fferr.ErrNotFound) {
			return nil, fmt.Errorf("refreshing league %s: %w", league.ID, err)
		}
		// No schedule at all: the league runs an alternative format.
		a.altFormat = true
	}

	a.phase = PhaseFetchingStats
	table, err := a.cfg.Stats.Get(ctx, a.cfg.Week, league.Season)
	if err != nil {
		return nil, fmt.Errorf("refreshing league %s: %w", league.ID, err)
	}

	a.phase = PhaseScoring
	rules := scoring.ResolveRules(league.ScoringConfig, a.cfg.Denylist)
	teams := a.buildTeams(rosters, users, table, rules)

	snapshot := &models.LeagueSnapshot{
		League:            *league,
		RefreshID:         uuid.NewString(),
		Week:              a.cfg.Week,
		AlternativeFormat: a.altFormat,
		FetchedAt:         time.Now(),
	}

	if a.altFormat {
		snapshot.Standings = buildStandings(teams)
		return snapshot, nil
	}

	snapshot.Matchups, snapshot.ByeTeams = a.pair(teams, slots)
	return snapshot, nil
}

// resolveIdentity maps the configured credential to a platform user ID so the
// caller's own team can be marked. Every failure path degrades to unknown
// ownership; identity is never worth failing a refresh over.
func (a *Assembler) resolveIdentity(ctx context.Context, users []models.LeagueUser) string {
	if a.cfg.Credential == "" {
		return ""
	}

	id, err := a.cfg.Provider.ResolveUserIdentity(ctx, a.cfg.Credential)
	if err == nil {
		return id
	}
	if !errors.Is(err, fferr.ErrUnsupported) {
		slog.Warn("Failed to resolve user identity", "league", a.cfg.League.ID, "error", err)
	}

	// Platform has no lookup (or it failed): match the credential against
	// league members, exact first, then fuzzy.
	for _, u := range users {
		if strings.EqualFold(u.ID, a.cfg.Credential) || strings.EqualFold(u.DisplayName, a.cfg.Credential) {
			return u.ID
		}
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.DisplayName
	}
	ranks := fuzzy.RankFindNormalizedFold(a.cfg.Credential, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return users[ranks[0].OriginalIndex].ID
	}
	return ""
}

func (a *Assembler) buildTeams(rosters []models.Roster, users []models.LeagueUser, table models.StatTable, rules scoring.RuleSet) map[int]models.Team {
	usersByID := make(map[string]models.LeagueUser, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	teams := make(map[int]models.Team, len(rosters))
	for _, roster := range rosters {
		team := models.Team{
			RosterID: roster.ID,
			Name:     fmt.Sprintf("Team %d", roster.ID),
			Owner:    "Unknown",
			Wins:     roster.Wins,
			Losses:   roster.Losses,
			Ties:     roster.Ties,
			IsMine:   a.myUserID != "" && roster.OwnerID == a.myUserID,
		}
		if u, ok := usersByID[roster.OwnerID]; ok {
			team.Owner = u.DisplayName
			if u.TeamName != "" {
				team.Name = u.TeamName
			} else if u.DisplayName != "" {
				team.Name = u.DisplayName
			}
		}

		for _, playerID := range roster.Players {
			value := scoring.Score(table[playerID], rules)
			team.Players = append(team.Players, models.PlayerScore{
				PlayerID: playerID,
				LeagueID: a.cfg.League.ID,
				Week:     a.cfg.Week,
				Value:    value,
			})
		}
		for _, playerID := range roster.Starters {
			team.Score += scoring.Score(table[playerID], rules)
		}

		teams[roster.ID] = team
	}
	return teams
}

// pair groups schedule slots into matchups. Only teams sharing a scheduled
// pairing face each other; a team with no opponent this week comes back as a
// standalone bye, never padded with a placeholder opponent.
func (a *Assembler) pair(teams map[int]models.Team, slots []models.MatchupSlot) ([]models.Matchup, []models.Team) {
	grouped := make(map[int][]int)
	order := make([]int, 0, len(slots))
	scheduled := make(map[int]bool, len(slots))
	for _, slot := range slots {
		if _, seen := grouped[slot.MatchupID]; !seen {
			order = append(order, slot.MatchupID)
		}
		grouped[slot.MatchupID] = append(grouped[slot.MatchupID], slot.RosterID)
		scheduled[slot.RosterID] = true
	}

	var matchups []models.Matchup
	var byes []models.Team
	for _, matchupID := range order {
		rosterIDs := grouped[matchupID]
		if len(rosterIDs) != 2 {
			for _, id := range rosterIDs {
				if team, ok := teams[id]; ok {
					byes = append(byes, team)
				}
			}
			continue
		}

		home, okHome := teams[rosterIDs[0]]
		away, okAway := teams[rosterIDs[1]]
		if !okHome || !okAway {
			continue
		}

		matchups = append(matchups, models.Matchup{
			Home:           home,
			Away:           away,
			Week:           a.cfg.Week,
			WinProbability: scoring.WinProbability(home.Score, away.Score, a.stdDevFor(home.RosterID)),
		})
	}

	// Teams absent from the schedule entirely are byes as well.
	ids := make([]int, 0, len(teams))
	for id := range teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if !scheduled[id] {
			byes = append(byes, teams[id])
		}
	}

	return matchups, byes
}

func (a *Assembler) stdDevFor(rosterID int) float64 {
	if a.cfg.StdDevFor != nil {
		if sd := a.cfg.StdDevFor(rosterID); sd > 0 {
			return sd
		}
	}
	return a.cfg.DefaultStdDev
}

// buildStandings is the simpler aggregation path for alternative-format
// leagues: a total-points leaderboard instead of head-to-head matchups.
func buildStandings(teams map[int]models.Team) []models.TeamStanding {
	standings := make([]models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		standings = append(standings, models.TeamStanding{
			RosterID: team.RosterID,
			TeamName: team.Name,
			Score:    team.Score,
			Wins:     team.Wins,
			Losses:   team.Losses,
			Ties:     team.Ties,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].RosterID < standings[j].RosterID
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
