package engine

import (
	"fieldwatch/internal/policy"
	"fieldwatch/internal/types"
)

// DefaultFuturePeriods is how many upcoming daytime periods are evaluated
// when the caller does not say otherwise.
const DefaultFuturePeriods = 4

// Inputs is the fully-materialized weather state for one evaluation pass.
// The engine never fetches anything; acquisition failures must be resolved
// before this struct is built.
type Inputs struct {
	// Snapshot is the current observation at the monitored station.
	Snapshot types.WeatherSnapshot
	// Periods is the full ordered forecast period list, day and night.
	Periods []types.ForecastPeriod
	// Hourly is the full ordered hourly forecast.
	Hourly []types.HourlyPeriod
	// Alerts is the set of currently active alert event types.
	Alerts types.AlertSet
	// Rules is the policy rule list, in evaluation order.
	Rules []policy.Rule
	// FuturePeriods is the number of upcoming daytime periods to evaluate.
	// Zero means DefaultFuturePeriods.
	FuturePeriods int
}

// maxDaytimePeriods caps how much of the forecast is considered; NWS serves
// roughly a week of periods and anything past ten daytime windows is noise.
const maxDaytimePeriods = 10

// DaytimePeriods returns the daytime subset of the forecast, capped at
// maxDaytimePeriods, preserving order. These are the units of future-looking
// evaluation and of presentation.
func DaytimePeriods(periods []types.ForecastPeriod) []types.ForecastPeriod {
	out := make([]types.ForecastPeriod, 0, maxDaytimePeriods)
	for _, p := range periods {
		if !p.IsDaytime {
			continue
		}
		out = append(out, p)
		if len(out) == maxDaytimePeriods {
			break
		}
	}
	return out
}

// Evaluate runs one complete pass: every rule against the current context,
// then every rule against each of the next FuturePeriods daytime periods,
// accumulating the driving and venue risk scores along the way and deriving
// their categorical levels once at the end.
//
// Matches are ordered rule-order within period-order. A rule evaluated
// against "now" never contributes to future matches and vice versa; each
// (rule, period) pair matches at most once. All state is local to the call,
// so concurrent passes do not interfere.
func Evaluate(in Inputs) types.Assessment {
	futureCount := in.FuturePeriods
	if futureCount <= 0 {
		futureCount = DefaultFuturePeriods
	}

	daytime := DaytimePeriods(in.Periods)
	precip := MaxPrecipByPeriod(daytime, in.Hourly)

	var totals riskTotals
	nowMatches := []types.MatchRecord{}
	futureMatches := []types.MatchRecord{}

	// Current pass. The descriptive text is the first period of the raw
	// forecast list (today or tonight, whichever is in effect); the
	// precipitation probability is today's daytime window.
	nowCtx := Context{
		When:    NowLabel,
		TempF:   in.Snapshot.TemperatureF,
		WindMph: in.Snapshot.WindMph,
		Alerts:  in.Alerts,
	}
	if len(in.Periods) > 0 {
		nowCtx.Text = in.Periods[0].DetailedForecast
	}
	if len(precip) > 0 {
		nowCtx.PrecipPct = precip[0]
	}
	for _, rule := range in.Rules {
		if rec, delta := EvaluateRule(rule, nowCtx); rec != nil {
			nowMatches = append(nowMatches, *rec)
			totals.add(delta)
		}
	}

	// Future pass over the periods immediately following today's.
	future := daytime
	if len(future) > 0 {
		future = future[1:]
	}
	if len(future) > futureCount {
		future = future[:futureCount]
	}
	for i, period := range future {
		ctx := Context{
			When:      period.Name,
			Text:      period.DetailedForecast,
			PrecipPct: precip[i+1],
			Future:    true,
		}
		for _, rule := range in.Rules {
			if rec, delta := EvaluateRule(rule, ctx); rec != nil {
				futureMatches = append(futureMatches, *rec)
				totals.add(delta)
			}
		}
	}

	return types.Assessment{
		NowMatches:    nowMatches,
		FutureMatches: futureMatches,
		DrivingRisk:   Level(totals.driving),
		VenueRisk:     Level(totals.venue),
	}
}
