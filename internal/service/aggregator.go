package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tomfleet/leaguesync/internal/api/fantasy"
	"github.com/tomfleet/leaguesync/internal/assembler"
	"github.com/tomfleet/leaguesync/internal/draft"
	"github.com/tomfleet/leaguesync/internal/fferr"
	"github.com/tomfleet/leaguesync/internal/models"
	"github.com/tomfleet/leaguesync/internal/repository/memory"
	"github.com/tomfleet/leaguesync/internal/scoring"
	"github.com/tomfleet/leaguesync/internal/statcache"
)

// LeagueRef names one league to aggregate.
type LeagueRef struct {
	Platform models.Platform
	ID       string
}

// RefreshResult is one league's outcome. Failures stay inside their own
// result; one broken league never aborts its siblings.
type RefreshResult struct {
	Ref      LeagueRef
	Snapshot *models.LeagueSnapshot
	Err      error
}

// AggregatorService fans a refresh out across every configured league, one
// fresh assembler per league, and records the results.
type AggregatorService struct {
	providers     map[models.Platform]fantasy.Provider
	directory     fantasy.PlayerDirectory
	stats         *statcache.Cache
	repo          *memory.Repository
	credentials   map[models.Platform]string
	defaultStdDev float64
}

func NewAggregatorService(
	providers map[models.Platform]fantasy.Provider,
	directory fantasy.PlayerDirectory,
	stats *statcache.Cache,
	repo *memory.Repository,
	credentials map[models.Platform]string,
	defaultStdDev float64,
) *AggregatorService {
	return &AggregatorService{
		providers:     providers,
		directory:     directory,
		stats:         stats,
		repo:          repo,
		credentials:   credentials,
		defaultStdDev: defaultStdDev,
	}
}

// RefreshAll refreshes every league concurrently. Results come back in the
// order of refs; completion order between leagues is unspecified.
func (s *AggregatorService) RefreshAll(ctx context.Context, refs []LeagueRef) []RefreshResult {
	results := make([]RefreshResult, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref LeagueRef) {
			defer wg.Done()
			snapshot, err := s.RefreshLeague(ctx, ref)
			results[i] = RefreshResult{Ref: ref, Snapshot: snapshot, Err: err}
		}(i, ref)
	}
	wg.Wait()

	return results
}

// RefreshLeague runs one league's refresh cycle with a fresh assembler and
// stores the snapshot on success.
func (s *AggregatorService) RefreshLeague(ctx context.Context, ref LeagueRef) (*models.LeagueSnapshot, error) {
	provider, ok := s.providers[ref.Platform]
	if !ok {
		return nil, fmt.Errorf("platform %s: %w", ref.Platform, fferr.ErrUnsupported)
	}

	league, err := provider.FetchLeague(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("refreshing league %s: %w", ref.ID, err)
	}

	asm := assembler.New(assembler.Config{
		League:        league,
		Week:          league.Week,
		Provider:      provider,
		Stats:         s.stats,
		Credential:    s.credentials[ref.Platform],
		StdDevFor:     s.stdDevFor(ref.ID),
		DefaultStdDev: s.defaultStdDev,
	})

	snapshot, err := asm.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	s.record(snapshot)
	slog.Info("Refreshed league",
		"league", ref.ID, "platform", ref.Platform, "week", snapshot.Week,
		"refresh_id", snapshot.RefreshID, "alternative_format", snapshot.AlternativeFormat)
	return snapshot, nil
}

// Draft reconstructs the league's draft history.
func (s *AggregatorService) Draft(ctx context.Context, ref LeagueRef) ([]models.DraftPick, error) {
	provider, ok := s.providers[ref.Platform]
	if !ok {
		return nil, fmt.Errorf("platform %s: %w", ref.Platform, fferr.ErrUnsupported)
	}

	league, err := provider.FetchLeague(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("reconstructing draft for league %s: %w", ref.ID, err)
	}

	return draft.NewReconstructor(provider, s.directory).Reconstruct(ctx, league)
}

// ForceRefreshStats drops the cached stat table for one key; the next league
// refresh fetches it fresh.
func (s *AggregatorService) ForceRefreshStats(week int, season string) {
	s.stats.ForceRefresh(week, season)
}

func (s *AggregatorService) record(snapshot *models.LeagueSnapshot) {
	s.repo.SaveSnapshot(snapshot)

	leagueID := snapshot.League.ID
	for _, m := range snapshot.Matchups {
		s.repo.RecordScore(leagueID, m.Home.RosterID, snapshot.Week, m.Home.Score)
		s.repo.RecordScore(leagueID, m.Away.RosterID, snapshot.Week, m.Away.Score)
	}
	for _, team := range snapshot.ByeTeams {
		s.repo.RecordScore(leagueID, team.RosterID, snapshot.Week, team.Score)
	}
	for _, row := range snapshot.Standings {
		s.repo.RecordScore(leagueID, row.RosterID, snapshot.Week, row.Score)
	}
}

// stdDevFor prefers a deviation estimated from the team's own score history
// over the configured default.
func (s *AggregatorService) stdDevFor(leagueID string) func(rosterID int) float64 {
	return func(rosterID int) float64 {
		sd, err := scoring.HistoricalStdDev(s.repo.ScoreHistory(leagueID, rosterID))
		if err != nil {
			return 0
		}
		return sd
	}
}
