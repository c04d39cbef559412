package models

import "time"

// Platform identifies which upstream service a league lives on.
type Platform string

const (
	PlatformSleeper Platform = "sleeper"
	PlatformESPN    Platform = "espn"
)

// League is the canonical view of one fantasy league for a season. It is
// immutable after the boundary conversion; platform-specific fields never
// leak past it.
type League struct {
	ID            string
	Platform      Platform
	Name          string
	Season        string
	Week          int
	TeamCount     int
	ScoringConfig map[string]float64
}

// LeagueUser is a league member as reported by the platform.
type LeagueUser struct {
	ID          string
	DisplayName string
	TeamName    string
}

// Roster is one participant's roster and record, normalized to canonical
// player IDs.
type Roster struct {
	ID        int
	OwnerID   string
	OwnerName string
	Players   []string
	Starters  []string
	Wins      int
	Losses    int
	Ties      int
	PointsFor float64
}

// StatVector holds one player's raw weekly statistics keyed by stat name.
type StatVector map[string]float64

// StatTable maps canonical player IDs to their stat vectors for one
// (week, season).
type StatTable map[string]StatVector

// PlayerScore is a computed fantasy score, never an upstream total.
type PlayerScore struct {
	PlayerID string
	LeagueID string
	Week     int
	Value    float64
}

// Team is an assembled league participant with its recomputed weekly score.
type Team struct {
	RosterID int
	Name     string
	Owner    string
	Players  []PlayerScore
	Score    float64
	Wins     int
	Losses   int
	Ties     int
	IsMine   bool
}

// Matchup pairs two teams for a week. WinProbability is the home team's.
type Matchup struct {
	Home           Team
	Away           Team
	Week           int
	WinProbability float64
}

// MatchupSlot is one roster's entry in the week's pairing schedule. Two slots
// sharing a MatchupID face each other; a slot with no partner is a bye.
type MatchupSlot struct {
	MatchupID int
	RosterID  int
}

// TeamStanding is one row of the total-points leaderboard produced for
// leagues without head-to-head schedules.
type TeamStanding struct {
	Rank     int
	RosterID int
	TeamName string
	Score    float64
	Wins     int
	Losses   int
	Ties     int
}

// LeagueSnapshot is the output of one assembler refresh. A snapshot is either
// complete or absent; partial results are never published.
type LeagueSnapshot struct {
	League            League
	RefreshID         string
	Week              int
	Matchups          []Matchup
	ByeTeams          []Team
	AlternativeFormat bool
	Standings         []TeamStanding
	FetchedAt         time.Time
}

// PlayerRecord is a player directory entry.
type PlayerRecord struct {
	ID       string
	FullName string
	Position string
	ProTeam  string
}
