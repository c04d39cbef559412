package models

// Raw ESPN payload shapes, decoded by the espn package and converted at the
// boundary. Prefixed to keep them apart from the canonical types.

type EspnLeagueResponse struct {
	ID              int              `json:"id"`
	ScoringPeriodID int              `json:"scoringPeriodId"`
	SeasonID        int              `json:"seasonId"`
	SegmentID       int              `json:"segmentId"`
	Status          EspnStatus       `json:"status"`
	Teams           []EspnTeam       `json:"teams"`
	Members         []EspnMember     `json:"members"`
	Settings        EspnSettings     `json:"settings"`
	Schedule        []EspnMatchup    `json:"schedule"`
	DraftDetail     *EspnDraftDetail `json:"draftDetail"`
}

type EspnSettings struct {
	Name            string              `json:"name"`
	Size            int                 `json:"size"`
	ScoringSettings EspnScoringSettings `json:"scoringSettings"`
}

type EspnScoringSettings struct {
	ScoringItems []EspnScoringItem `json:"scoringItems"`
}

type EspnScoringItem struct {
	StatID int     `json:"statId"`
	Points float64 `json:"points"`
}

type EspnStatus struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type EspnMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type EspnTeam struct {
	ID           int        `json:"id"`
	Abbreviation string     `json:"abbrev"`
	Name         string     `json:"name"`
	PrimaryOwner string     `json:"primaryOwner"`
	PlayoffSeed  int        `json:"playoffSeed"`
	Points       float64    `json:"points"`
	Roster       EspnRoster `json:"roster"`
	Record       EspnRecord `json:"record"`
}

type EspnRoster struct {
	Entries []EspnRosterEntry `json:"entries"`
}

type EspnRecord struct {
	Overall EspnRecordDetails `json:"overall"`
}

type EspnRecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type EspnMatchup struct {
	ID            int           `json:"id"`
	MatchupPeriod int           `json:"matchupPeriodId"`
	Away          *EspnTeamSide `json:"away"`
	Home          *EspnTeamSide `json:"home"`
	Winner        string        `json:"winner"`
}

type EspnTeamSide struct {
	TeamID      int     `json:"teamId"`
	TotalPoints float64 `json:"totalPoints"`
}

type EspnRosterEntry struct {
	PlayerPoolEntry EspnPlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int                 `json:"lineupSlotId"`
}

type EspnPlayerPoolEntry struct {
	ID               int        `json:"id"`
	OnTeamID         int        `json:"onTeamId"`
	Player           EspnPlayer `json:"player"`
	AppliedStatTotal float64    `json:"appliedStatTotal"`
}

type EspnPlayer struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	InjuryStatus      string `json:"injuryStatus"`
}

type EspnDraftDetail struct {
	Drafted bool            `json:"drafted"`
	Picks   []EspnDraftPick `json:"picks"`
}

type EspnDraftPick struct {
	OverallPickNumber int `json:"overallPickNumber"`
	RoundID           int `json:"roundId"`
	RoundPickNumber   int `json:"roundPickNumber"`
	TeamID            int `json:"teamId"`
	PlayerID          int `json:"playerId"`
}
