// Package engine implements the rule-evaluation and risk-scoring core of
// fieldwatch. Given a fully-materialized set of weather facts (current
// snapshot, forecast periods, hourly periods, active alerts) and a policy
// rule list, Evaluate produces the complete assessment for "now" and the
// upcoming daytime periods in a single pure, deterministic, re-entrant pass.
// Nothing in this package performs I/O or keeps state across invocations.
package engine

import (
	"math"
	"strconv"
)

// mphPerMeterPerSec converts meters/second to miles/hour.
const mphPerMeterPerSec = 2.237

// TempUnavailable is the sentinel reported for a missing temperature reading.
// Wind absence is represented by a nil pointer instead; callers must treat
// both as non-numeric.
const TempUnavailable = "unavailable"

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CelsiusToFahrenheit converts a Celsius reading to Fahrenheit rounded to one
// decimal. A nil input (sensor offline) stays nil; no numeric computation is
// ever performed on an absent reading.
func CelsiusToFahrenheit(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := round1(*c*9/5 + 32)
	return &f
}

// MetersPerSecToMph converts a wind speed reading to miles/hour rounded to
// one decimal. A nil input stays nil.
func MetersPerSecToMph(ms *float64) *float64 {
	if ms == nil {
		return nil
	}
	mph := round1(*ms * mphPerMeterPerSec)
	return &mph
}

// FormatTemp renders a Fahrenheit reading for display, substituting the
// TempUnavailable sentinel for a missing value.
func FormatTemp(f *float64) string {
	if f == nil {
		return TempUnavailable
	}
	return formatFloat1(*f)
}

// formatFloat1 renders a float with exactly one decimal place.
func formatFloat1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
