package engine

import "fieldwatch/internal/types"

// MaxPrecipByPeriod computes, for each forecast period given, the maximum
// precipitation probability among hourly periods whose start time falls in
// the half-open interval [period.start, period.end). An hourly entry starting
// exactly at the period end belongs to the next period. Absent probabilities
// count as 0, and a period with no qualifying hours reports 0.
//
// The result is positionally aligned with the input periods and is computed
// once per evaluation pass, then reused by rain_rate evaluation for both the
// current and future contexts.
func MaxPrecipByPeriod(periods []types.ForecastPeriod, hourly []types.HourlyPeriod) []int {
	out := make([]int, len(periods))
	for i, p := range periods {
		maxProb := 0
		for _, h := range hourly {
			if h.StartTime.Before(p.StartTime) || !h.StartTime.Before(p.EndTime) {
				continue
			}
			prob := 0
			if h.PrecipProbability != nil {
				prob = *h.PrecipProbability
			}
			if prob > maxProb {
				maxProb = prob
			}
		}
		out[i] = maxProb
	}
	return out
}
