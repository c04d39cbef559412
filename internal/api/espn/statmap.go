package espn

import "github.com/tomfleet/leaguesync/internal/models"

// ESPN scoring items reference numeric stat IDs. This table maps them onto
// the canonical stat key space so one rule resolver serves both platforms.
// IDs with no canonical equivalent are dropped at conversion.
var statIDToKey = map[int]string{
	3:   "pass_yd",
	4:   "pass_td",
	19:  "pass_2pt",
	20:  "pass_int",
	24:  "rush_yd",
	25:  "rush_td",
	26:  "rush_2pt",
	42:  "rec_yd",
	43:  "rec_td",
	44:  "rec_2pt",
	53:  "rec",
	72:  "fum_lost",
	74:  "fgm_50p",
	77:  "fgm_40_49",
	80:  "fgm_0_39",
	85:  "fgmiss",
	86:  "xpm",
	88:  "xpmiss",
	89:  "pts_allow_0",
	95:  "int",
	96:  "fum_rec",
	97:  "blk_kick",
	98:  "safe",
	99:  "sack",
	104: "def_td",
	101: "kick_ret_td",
	102: "punt_ret_td",
}

func convertScoringItems(items []models.EspnScoringItem) map[string]float64 {
	config := make(map[string]float64, len(items))
	for _, item := range items {
		key, ok := statIDToKey[item.StatID]
		if !ok {
			continue
		}
		config[key] = item.Points
	}
	return config
}
