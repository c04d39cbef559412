package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tomfleet/leaguesync/internal/models"
)

// Repository holds the latest successful snapshot per league plus each
// team's weekly score history, which feeds the win-probability deviation
// estimate. Scores are keyed by week so re-refreshing a week overwrites
// rather than duplicates.
type Repository struct {
	mu        sync.RWMutex
	snapshots map[string]*models.LeagueSnapshot
	history   map[string]map[int]float64
}

func NewRepository() *Repository {
	return &Repository{
		snapshots: make(map[string]*models.LeagueSnapshot),
		history:   make(map[string]map[int]float64),
	}
}

func (r *Repository) SaveSnapshot(snapshot *models.LeagueSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.League.ID] = snapshot
}

func (r *Repository) GetSnapshot(leagueID string) *models.LeagueSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshots[leagueID]
}

func (r *Repository) RecordScore(leagueID string, rosterID, week int, score float64) {
	key := historyKey(leagueID, rosterID)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.history[key] == nil {
		r.history[key] = make(map[int]float64)
	}
	r.history[key][week] = score
}

// ScoreHistory returns the team's recorded weekly scores in week order.
func (r *Repository) ScoreHistory(leagueID string, rosterID int) []float64 {
	key := historyKey(leagueID, rosterID)
	r.mu.RLock()
	defer r.mu.RUnlock()

	byWeek := r.history[key]
	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	scores := make([]float64, 0, len(weeks))
	for _, week := range weeks {
		scores = append(scores, byWeek[week])
	}
	return scores
}

func historyKey(leagueID string, rosterID int) string {
	return fmt.Sprintf("%s:%d", leagueID, rosterID)
}
