package models

// Raw Sleeper payload shapes. These exist only so the sleeper package can
// decode responses; everything past that boundary uses the canonical model.

type SleeperLeague struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	Status          string             `json:"status"`
	TotalRosters    int                `json:"total_rosters"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	Settings        SleeperLeagueSet   `json:"settings"`
}

type SleeperLeagueSet struct {
	Leg         int `json:"leg"`
	PlayoffWeek int `json:"playoff_week_start"`
	DraftRounds int `json:"draft_rounds"`
}

type SleeperRoster struct {
	RosterID int                   `json:"roster_id"`
	OwnerID  string                `json:"owner_id"`
	Players  []string              `json:"players"`
	Starters []string              `json:"starters"`
	Settings SleeperRosterSettings `json:"settings"`
}

type SleeperRosterSettings struct {
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	Fpts      float64 `json:"fpts"`
	FptsDecim float64 `json:"fpts_decimal"`
}

type SleeperUser struct {
	UserID      string              `json:"user_id"`
	DisplayName string              `json:"display_name"`
	Metadata    SleeperUserMetadata `json:"metadata"`
}

type SleeperUserMetadata struct {
	TeamName string `json:"team_name"`
}

type SleeperMatchup struct {
	MatchupID int     `json:"matchup_id"`
	RosterID  int     `json:"roster_id"`
	Points    float64 `json:"points"`
}

type SleeperDraft struct {
	DraftID string `json:"draft_id"`
	Status  string `json:"status"`
	Season  string `json:"season"`
}

type SleeperDraftPick struct {
	PickNo    int    `json:"pick_no"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	RosterID  int    `json:"roster_id"`
	PlayerID  string `json:"player_id"`
}

type SleeperPlayer struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	EspnID    int    `json:"espn_id"`
}

type SleeperState struct {
	Week   int    `json:"week"`
	Season string `json:"season"`
}
