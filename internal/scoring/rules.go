// Package scoring resolves per-league scoring rules and computes fantasy
// scores from raw weekly statistics. Scores are always recomputed here;
// upstream precomputed totals are never trusted.
package scoring

import "strings"

// RuleSet is the active stat→weight mapping for one league, with counters
// describing how much of the raw configuration survived filtering.
type RuleSet struct {
	Weights         map[string]float64
	SourceRules     int
	FilteredRules   int
	DenylistVersion string
}

// Denylist names the template-noise rules excluded from every resolved rule
// set. It is versioned configuration: new upstream scoring templates get a
// new list revision, not new code.
type Denylist struct {
	Version string
	keys    map[string]struct{}
}

func NewDenylist(version string, keys ...string) Denylist {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return Denylist{Version: version, keys: set}
}

func (d Denylist) Blocked(key string) bool {
	_, ok := d.keys[key]
	return ok
}

// DefaultDenylist covers the micro-weight keys some scoring templates carry
// but almost no league actually scores.
var DefaultDenylist = NewDenylist("2025.1",
	"pass_air_yd",
	"pass_att",
	"pass_cmp",
	"pass_inc",
	"qb_hit",
	"rush_att",
	"rec_tgt",
	"kick_ret_yd",
	"punt_ret_yd",
	"tm_off_snp",
)

// statFamilies are the recognized stat key prefixes. A weight on a key
// outside every family is template noise regardless of its value.
var statFamilies = []string{
	"pass",
	"rush",
	"rec",
	"fum",
	"int",
	"fgm",
	"fgmiss",
	"xpm",
	"xpmiss",
	"def",
	"st",
	"sack",
	"safe",
	"blk",
	"pts_allow",
	"kick_ret",
	"punt_ret",
	"bonus",
}

func recognizedFamily(key string) bool {
	for _, family := range statFamilies {
		if key == family || strings.HasPrefix(key, family+"_") {
			return true
		}
	}
	return false
}

// ResolveRules filters a raw league scoring configuration down to its active
// rules. Pure: the same configuration always yields the same rule set.
func ResolveRules(raw map[string]float64, denylist Denylist) RuleSet {
	weights := make(map[string]float64, len(raw))
	for key, weight := range raw {
		if weight == 0 {
			continue
		}
		if !recognizedFamily(key) || denylist.Blocked(key) {
			continue
		}
		weights[key] = weight
	}

	return RuleSet{
		Weights:         weights,
		SourceRules:     len(raw),
		FilteredRules:   len(raw) - len(weights),
		DenylistVersion: denylist.Version,
	}
}
