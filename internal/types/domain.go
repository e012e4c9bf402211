// Package types defines the shared domain records, error taxonomy, and
// cross-cutting helpers (clock, secrets, request context) for the fieldwatch
// platform. Packages closer to the edges (NWS client, HTTP server, Slack
// notifier) translate to and from these records so the evaluation core never
// sees wire formats.
package types

import "time"

// WeatherSnapshot is the derived set of current conditions at the monitored
// station. Quantitative readings are pointers: the upstream observation feed
// returns null for sensors that are offline, and absence must flow through
// evaluation as "unavailable" rather than zero.
type WeatherSnapshot struct {
	TemperatureF *float64  `json:"temperature_f"`
	WindMph      *float64  `json:"wind_mph"`
	HumidityPct  *float64  `json:"humidity_pct"`
	Description  string    `json:"description"`
	ObservedAt   time.Time `json:"observed_at"`
	StationID    string    `json:"station_id"`
}

// ForecastPeriod is one named window of the NWS forecast (e.g. "Tuesday",
// "Tuesday Night").
type ForecastPeriod struct {
	Name             string    `json:"name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	IsDaytime        bool      `json:"is_daytime"`
	Temperature      int       `json:"temperature"`
	TemperatureUnit  string    `json:"temperature_unit"`
	ShortForecast    string    `json:"short_forecast"`
	DetailedForecast string    `json:"detailed_forecast"`
	Icon             string    `json:"icon"`
	WindSpeed        string    `json:"wind_speed"`
	WindDirection    string    `json:"wind_direction"`
}

// HourlyPeriod is one hour of the fine-grained forecast. PrecipProbability is
// nil when the upstream feed omits the value; consumers treat nil as 0.
type HourlyPeriod struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	PrecipProbability *int      `json:"precip_probability"`
}

// AlertSet is the set of alert event types currently in effect for the
// monitored point. Order and duplicates are irrelevant.
type AlertSet map[string]struct{}

// NewAlertSet builds an AlertSet from a list of event-type strings.
func NewAlertSet(events []string) AlertSet {
	s := make(AlertSet, len(events))
	for _, e := range events {
		s[e] = struct{}{}
	}
	return s
}

// Contains reports whether the given alert event type is active.
func (s AlertSet) Contains(event string) bool {
	_, ok := s[event]
	return ok
}

// Events returns the active event types as a slice. Order is unspecified.
func (s AlertSet) Events() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	return out
}

// MatchRecord is evidence that one policy rule held for one time context.
// When is "Now" for the current conditions pass or the forecast period name
// for a future pass. Value is condition-dependent: a phrase marker ("Snow
// mentioned"), a formatted probability ("60%"), or a number rendered as text.
type MatchRecord struct {
	When      string `json:"when"`
	Condition string `json:"condition"`
	Value     string `json:"value"`
	Action    string `json:"action"`
}

// RiskLevel is the categorical translation of an accumulated risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Assessment is the complete output of one evaluation pass: ordered matches
// for "now" and for the future periods, plus the two derived risk levels.
// It is produced whole; no partial assessments are emitted mid-pass.
type Assessment struct {
	NowMatches    []MatchRecord `json:"now_matches"`
	FutureMatches []MatchRecord `json:"future_matches"`
	DrivingRisk   RiskLevel     `json:"driving_risk"`
	VenueRisk     RiskLevel     `json:"venue_risk"`
}

// ForecastCard is a daytime forecast period joined with the maximum
// precipitation probability observed across its hourly windows. This is the
// unit the presentation layer renders.
type ForecastCard struct {
	ForecastPeriod
	PrecipPct int `json:"precip_pct"`
}

// Outlook is the full result consumed by presentation: current conditions,
// the daytime forecast, the rule assessment, and the next scheduled practice.
type Outlook struct {
	GeneratedAt  time.Time       `json:"generated_at"`
	Conditions   WeatherSnapshot `json:"conditions"`
	Forecast     []ForecastCard  `json:"forecast"`
	ActiveAlerts []string        `json:"active_alerts"`
	Assessment   Assessment      `json:"assessment"`
	NextPractice time.Time       `json:"next_practice"`
}
