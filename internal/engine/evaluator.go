package engine

import (
	"fmt"

	"fieldwatch/internal/policy"
	"fieldwatch/internal/types"
)

// Alert event types whose presence alone raises a risk score.
var (
	drivingAlertTypes = map[string]struct{}{
		"Winter Storm Warning": {},
		"Ice Storm Warning":    {},
		"Flood Warning":        {},
	}
	venueAlertTypes = map[string]struct{}{
		"Tornado Warning":             {},
		"Severe Thunderstorm Warning": {},
	}
)

// severeThunderstormWarning is the alert that gates hail_warning for the
// current context.
const severeThunderstormWarning = "Severe Thunderstorm Warning"

// Context carries the weather facts available for one evaluation instant.
// For a future period only Text and PrecipPct are meaningful; TempF, WindMph,
// and Alerts describe the current observation and are left zero-valued when
// Future is set. Rules that require unavailable facts simply do not match;
// that is policy, not an error.
type Context struct {
	// When labels produced match records: "Now" or the period's display name.
	When string
	// Text is the free-text forecast description for this instant.
	Text string
	// TempF is the numeric current temperature; nil when unavailable.
	TempF *float64
	// WindMph is the numeric current wind speed; nil when unavailable.
	WindMph *float64
	// Alerts is the active alert set; only populated for the current context.
	Alerts types.AlertSet
	// PrecipPct is the maximum precipitation probability for this period.
	PrecipPct int
	// Future marks evaluation of a forecast period rather than "now".
	Future bool
}

// NowLabel is the When value used for current-conditions matches.
const NowLabel = "Now"

// EvaluateRule decides whether one policy rule matches one context and, if
// so, returns the match record and the rule's risk contribution. It is a pure
// function: identical inputs always yield the identical result. A nil record
// with a zero delta means no match.
func EvaluateRule(rule policy.Rule, ctx Context) (*types.MatchRecord, RiskDelta) {
	var (
		matched bool
		value   string
		delta   RiskDelta
	)

	switch rule.Condition {
	case policy.CondWeatherAlert:
		if ctx.Future {
			break
		}
		if ctx.Alerts.Contains(rule.Type) {
			matched = true
			value = rule.Type
			if _, ok := drivingAlertTypes[rule.Type]; ok {
				delta.Driving += 5
			}
			if _, ok := venueAlertTypes[rule.Type]; ok {
				delta.Venue += 5
			}
		}

	case policy.CondSnowAccumulation:
		if Mentions(ctx.Text, CategorySnow) {
			matched = true
			value = "Snow mentioned"
			delta.Driving += 4
		}

	case policy.CondIceAccumulation:
		if Mentions(ctx.Text, CategoryIce) {
			matched = true
			value = "Ice mentioned"
			delta.Driving += 5
		}

	case policy.CondRainRate:
		if Mentions(ctx.Text, CategoryRain) && float64(ctx.PrecipPct) >= rule.ThresholdPct {
			matched = true
			value = fmt.Sprintf("%d%%", ctx.PrecipPct)
			delta.Driving += 2
		}

	case policy.CondWindSpeed:
		if ctx.Future || ctx.WindMph == nil {
			break
		}
		if *ctx.WindMph >= rule.Threshold {
			matched = true
			value = formatFloat1(*ctx.WindMph)
			delta.Driving += 2
			delta.Venue += 3
		}

	case policy.CondHailWarning:
		hailText := Mentions(ctx.Text, CategoryHail)
		if ctx.Future {
			matched = hailText
		} else {
			matched = hailText && ctx.Alerts.Contains(severeThunderstormWarning)
		}
		if matched {
			value = "Hail risk"
			delta.Venue += 5
		}

	case policy.CondVisibility:
		if Mentions(ctx.Text, CategoryFog) {
			matched = true
			value = "Low visibility"
			delta.Driving += 4
		}

	case policy.CondTemperature:
		var (
			reading  *float64
			rendered string
		)
		if ctx.Future {
			if n := HighNearValue(ctx.Text); n != nil {
				v := float64(*n)
				reading = &v
				rendered = fmt.Sprintf("%d", *n)
			}
		} else if ctx.TempF != nil {
			reading = ctx.TempF
			rendered = formatFloat1(*ctx.TempF)
		}
		if reading == nil {
			break
		}
		if compare(*reading, rule.Comparison, rule.Threshold) {
			matched = true
			value = rendered
			// Only excessive heat affects the venue; cold thresholds are
			// advisory and carry no score.
			if rule.Comparison == policy.CompareGTE {
				delta.Venue += 2
			}
		}

	case policy.CondHeatIndex:
		// The current context reads the explicit heat-index phrase; future
		// periods fall back to the forecast high. Observed behavior, kept
		// as-is for compatibility.
		var n *int
		if ctx.Future {
			n = HighNearValue(ctx.Text)
		} else {
			n = HeatIndexValue(ctx.Text)
		}
		if n != nil && float64(*n) >= rule.Threshold {
			matched = true
			value = fmt.Sprintf("%d", *n)
			delta.Venue += 3
		}

	case policy.CondAirQualityIndex:
		// No AQI data source; the rule is accepted but can never match.

	default:
		// Unknown condition kinds never match.
	}

	if !matched {
		return nil, RiskDelta{}
	}
	return &types.MatchRecord{
		When:      ctx.When,
		Condition: rule.Condition,
		Value:     value,
		Action:    rule.Action,
	}, delta
}

// compare applies a policy comparison operator. Unknown operators behave as
// ">=", matching the permissive reading the policy has always had.
func compare(v float64, op string, threshold float64) bool {
	if op == policy.CompareLTE {
		return v <= threshold
	}
	return v >= threshold
}
