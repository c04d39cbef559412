package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomfleet/leaguesync/internal/models"
)

func TestScore_StandardPassingLine(t *testing.T) {
	rules := ResolveRules(map[string]float64{
		"pass_yd": 0.04,
		"pass_td": 4,
		"rec":     1.0,
	}, DefaultDenylist)

	stats := models.StatVector{
		"pass_yd": 300,
		"pass_td": 2,
		"rec":     0,
	}

	assert.InDelta(t, 20.0, Score(stats, rules), 1e-9)
}

func TestScore_IsLinear(t *testing.T) {
	rules := ResolveRules(map[string]float64{
		"rush_yd": 0.1,
		"rush_td": 6,
		"rec_yd":  0.1,
	}, DefaultDenylist)

	stats := models.StatVector{
		"rush_yd": 87,
		"rush_td": 1,
		"rec_yd":  34,
	}

	doubled := models.StatVector{}
	for k, v := range stats {
		doubled[k] = v * 2
	}

	assert.InDelta(t, Score(stats, rules)*2, Score(doubled, rules), 1e-9)
}

func TestScore_EmptyRuleSetScoresZero(t *testing.T) {
	rules := ResolveRules(map[string]float64{}, DefaultDenylist)
	stats := models.StatVector{"pass_yd": 412, "pass_td": 4}

	assert.Zero(t, Score(stats, rules))
}

func TestScore_IgnoresKeysMissingFromRuleSet(t *testing.T) {
	rules := ResolveRules(map[string]float64{"rec": 0.5}, DefaultDenylist)
	stats := models.StatVector{
		"rec":     6,
		"rec_yd":  74, // no weight in this league
		"rush_yd": 12,
	}

	assert.InDelta(t, 3.0, Score(stats, rules), 1e-9)
}

func TestScore_MissingStatsContributeZero(t *testing.T) {
	rules := ResolveRules(map[string]float64{"rec": 0.5, "rec_td": 6}, DefaultDenylist)

	assert.Zero(t, Score(models.StatVector{}, rules))
	assert.Zero(t, Score(nil, rules))
}

// The same player legitimately scores differently in two leagues with
// different rule sets. This is why upstream totals are never reused.
func TestScore_SamePlayerDifferentLeagues(t *testing.T) {
	stats := models.StatVector{
		"rec":    8,
		"rec_yd": 95,
		"rec_td": 1,
	}

	pprLeague := ResolveRules(map[string]float64{
		"rec":    1.0,
		"rec_yd": 0.1,
		"rec_td": 6,
	}, DefaultDenylist)
	standardLeague := ResolveRules(map[string]float64{
		"rec_yd": 0.1,
		"rec_td": 6,
	}, DefaultDenylist)

	assert.InDelta(t, 23.5, Score(stats, pprLeague), 1e-9)
	assert.InDelta(t, 15.5, Score(stats, standardLeague), 1e-9)
	assert.NotEqual(t, Score(stats, pprLeague), Score(stats, standardLeague))
}
