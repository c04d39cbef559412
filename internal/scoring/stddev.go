package scoring

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// minHistory is the fewest weekly scores worth estimating a deviation from.
const minHistory = 3

// HistoricalStdDev estimates a team's weekly score deviation from its past
// scores, for use in place of the configured default once enough weeks have
// been played.
func HistoricalStdDev(scores []float64) (float64, error) {
	if len(scores) < minHistory {
		return 0, fmt.Errorf("need at least %d scores, have %d", minHistory, len(scores))
	}

	sd, err := stats.StandardDeviationSample(stats.Float64Data(scores))
	if err != nil {
		return 0, fmt.Errorf("computing standard deviation: %w", err)
	}
	return sd, nil
}
