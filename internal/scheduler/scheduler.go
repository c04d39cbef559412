package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tomfleet/leaguesync/internal/service"
)

type Scheduler struct {
	s          gocron.Scheduler
	aggregator *service.AggregatorService
	refs       []service.LeagueRef
}

func NewScheduler(aggregator *service.AggregatorService, refs []service.LeagueRef) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago") // CDT
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:          s,
		aggregator: aggregator,
		refs:       refs,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Live scoring - every 10 minutes
	_, err = s.s.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(s.refreshAll),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	// Morning-after sweep - Tuesday 7:30 CDT, once stat corrections land
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.forceRefresh),
	)
	if err != nil {
		return fmt.Errorf("failed to create stat correction job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, result := range s.aggregator.RefreshAll(ctx, s.refs) {
		if result.Err != nil {
			slog.Error("Failed to refresh league", "league", result.Ref.ID, "error", result.Err)
		}
	}
}

// forceRefresh evicts every active stat table and re-scores all leagues so
// overnight stat corrections are picked up.
func (s *Scheduler) forceRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	type key struct {
		week   int
		season string
	}
	seen := make(map[key]struct{})
	for _, result := range s.aggregator.RefreshAll(ctx, s.refs) {
		if result.Err != nil {
			slog.Error("Failed to refresh league", "league", result.Ref.ID, "error", result.Err)
			continue
		}
		seen[key{result.Snapshot.Week, result.Snapshot.League.Season}] = struct{}{}
	}

	for k := range seen {
		s.aggregator.ForceRefreshStats(k.week, k.season)
	}

	for _, result := range s.aggregator.RefreshAll(ctx, s.refs) {
		if result.Err != nil {
			slog.Error("Failed to refresh league", "league", result.Ref.ID, "error", result.Err)
		}
	}
}
