package outlook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldwatch/internal/types"
)

func TestSummaryNoMatches(t *testing.T) {
	got := Summary(types.Assessment{DrivingRisk: types.RiskLow, VenueRisk: types.RiskLow}, "Friday 19:15")
	assert.Equal(t, NoConcernsSummary, got)
}

func TestSummaryWithMatches(t *testing.T) {
	a := types.Assessment{
		NowMatches: []types.MatchRecord{
			{When: "Now", Condition: "wind_speed", Value: "25.0", Action: "Secure the canopy"},
		},
		FutureMatches: []types.MatchRecord{
			{When: "Wednesday", Condition: "snow_accumulation", Value: "Snow mentioned", Action: "Plan for cancellation"},
		},
		DrivingRisk: types.RiskMedium,
		VenueRisk:   types.RiskHigh,
	}

	got := Summary(a, "Friday 19:15")
	assert.Contains(t, got, "next practice Friday 19:15")
	assert.Contains(t, got, "Driving risk: Medium / Venue risk: High")
	assert.Contains(t, got, "Current alert recommendations:")
	assert.Contains(t, got, "wind_speed: 25.0 → Secure the canopy")
	assert.Contains(t, got, "Upcoming alert predictions:")
	assert.Contains(t, got, "Wednesday, snow_accumulation: Snow mentioned → Plan for cancellation")
}

func TestSummaryOnlyFutureMatches(t *testing.T) {
	a := types.Assessment{
		FutureMatches: []types.MatchRecord{
			{When: "Thursday", Condition: "visibility", Value: "Low visibility", Action: "Carpool with lights on"},
		},
		DrivingRisk: types.RiskMedium,
		VenueRisk:   types.RiskLow,
	}

	got := Summary(a, "Friday 19:15")
	assert.NotContains(t, got, "Current alert recommendations:")
	assert.Contains(t, got, "Thursday, visibility: Low visibility → Carpool with lights on")
}
