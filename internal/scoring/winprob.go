package scoring

import "math"

const (
	probFloor   = 0.05
	probCeiling = 0.95
)

// WinProbability estimates the chance the team at myScore beats the team at
// oppScore, treating both scores as independent normals with the given
// per-team standard deviation. Before any points are on the board the answer
// is exactly even money. Lower stdDev makes small leads more decisive.
func WinProbability(myScore, oppScore, stdDev float64) float64 {
	if myScore+oppScore == 0 {
		return 0.5
	}

	lead := myScore - oppScore
	combinedSD := stdDev * math.Sqrt2
	if combinedSD <= 0 {
		switch {
		case lead > 0:
			return probCeiling
		case lead < 0:
			return probFloor
		default:
			return 0.5
		}
	}

	p := normalCDF(lead / combinedSD)
	return math.Min(probCeiling, math.Max(probFloor, p))
}

// normalCDF is the Abramowitz and Stegun 26.2.17 rational approximation,
// accurate to about 1.5e-7.
func normalCDF(z float64) float64 {
	if z < 0 {
		return 1 - normalCDF(-z)
	}

	t := 1 / (1 + 0.2316419*z)
	poly := t * (0.319381530 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	return 1 - pdf*poly
}
