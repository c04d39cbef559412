package scoring

import "github.com/tomfleet/leaguesync/internal/models"

// Score computes one player's fantasy score as the dot product of their stat
// vector and the league's resolved weights. Keys missing from either side
// contribute nothing. The same player scores differently in every league with
// a different rule set, which is why this runs per (player, league) and never
// reuses an upstream total. No rounding; that belongs to presentation.
func Score(stats models.StatVector, rules RuleSet) float64 {
	var total float64
	for key, value := range stats {
		if weight, ok := rules.Weights[key]; ok {
			total += value * weight
		}
	}
	return total
}
