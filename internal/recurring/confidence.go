package recurring

import (
	"math"

	"github.com/caddyshack-fin/cadence/internal/model"
)

const (
	intervalWeight = 0.6
	amountWeight   = 0.4

	// lowEvidenceCap bounds the score of a series classified from only two
	// occurrences; a single clean gap is weak evidence of regularity.
	lowEvidenceCap = 50
)

// Score rates how regular a series is on a 0-100 scale, blending interval
// consistency (60%) and amount consistency (40%). Both components are the
// coefficient-of-variation inverted and clamped to [0,1].
func Score(occs []model.Occurrence) int {
	if len(occs) < 2 {
		return 0
	}

	gaps := Gaps(occs)
	gapValues := make([]float64, len(gaps))
	for i, g := range gaps {
		gapValues[i] = float64(g)
	}
	intervalScore := consistency(gapValues, mean(gapValues))

	amounts := make([]float64, len(occs))
	absAmounts := make([]float64, len(occs))
	for i, occ := range occs {
		amounts[i] = occ.Amount
		absAmounts[i] = math.Abs(occ.Amount)
	}
	amountScore := consistency(amounts, mean(absAmounts))

	score := int(math.Round(100 * (intervalWeight*intervalScore + amountWeight*amountScore)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if len(occs) <= 2 && score > lowEvidenceCap {
		score = lowEvidenceCap
	}
	return score
}

// consistency is 1 - stddev/denominator clamped to [0,1]; a zero denominator
// scores zero rather than dividing.
func consistency(values []float64, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return clamp01(1 - stdDev(values)/denominator)
}
