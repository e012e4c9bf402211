package engine

import "fieldwatch/internal/types"

// Categorical risk thresholds. Applied identically to the driving and venue
// totals after all rules across all periods have been evaluated.
const (
	riskHighFloor   = 5
	riskMediumFloor = 3
)

// RiskDelta is the contribution of a single rule match to the two risk
// accumulators. A no-match always contributes a zero delta.
type RiskDelta struct {
	Driving int
	Venue   int
}

// riskTotals are the per-pass accumulators. They start at zero, only ever
// increase, and are read once at the end of the pass.
type riskTotals struct {
	driving int
	venue   int
}

func (t *riskTotals) add(d RiskDelta) {
	t.driving += d.Driving
	t.venue += d.Venue
}

// Level converts an accumulated risk score into its categorical level:
// >= 5 High, >= 3 Medium, otherwise Low.
func Level(score int) types.RiskLevel {
	switch {
	case score >= riskHighFloor:
		return types.RiskHigh
	case score >= riskMediumFloor:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
