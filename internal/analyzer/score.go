package analyzer

import (
	"math"

	"github.com/samber/lo"

	"github.com/die-Manufaktur/seo-copilot-api/internal/types"
)

// Priority weights used by the overall score
const (
	weightHigh   = 3
	weightMedium = 2
	weightLow    = 1
)

// priorityWeight maps a check priority to its score weight. Unknown
// priorities weigh as low rather than being dropped.
func priorityWeight(p types.Priority) int {
	switch p {
	case types.PriorityHigh:
		return weightHigh
	case types.PriorityMedium:
		return weightMedium
	default:
		return weightLow
	}
}

// Score computes the weighted pass percentage over the given check
// results, rounded half up to the nearest integer. An empty result set
// scores zero.
func Score(checks []types.CheckResult) int {
	total := lo.SumBy(checks, func(c types.CheckResult) int {
		return priorityWeight(c.Priority)
	})

	if total == 0 {
		return 0
	}

	earned := lo.SumBy(checks, func(c types.CheckResult) int {
		if !c.Passed {
			return 0
		}

		return priorityWeight(c.Priority)
	})

	return int(math.Round(float64(earned) / float64(total) * 100))
}
