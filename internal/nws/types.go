// Package nws is the anti-corruption layer for api.weather.gov. It resolves
// the grid point for the monitored location, fetches the forecast, hourly
// forecast, active alerts, and latest station observations concurrently, and
// maps the wire records into the domain types the evaluation core consumes.
// Unit conversion happens at this boundary: Celsius and meters/second come
// off the wire, Fahrenheit and miles/hour go into the domain.
package nws

import "time"

// pointsResponse is the subset of /points/{lat},{lon} the client needs: the
// per-gridpoint forecast endpoint URLs.
type pointsResponse struct {
	Properties struct {
		Forecast       string `json:"forecast"`
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

// forecastResponse decodes both the twice-daily and the hourly forecast
// documents; the two share the period envelope and differ only in which
// fields are populated.
type forecastResponse struct {
	Properties struct {
		Periods []wirePeriod `json:"periods"`
	} `json:"properties"`
}

// wirePeriod is one forecast period as served by NWS.
type wirePeriod struct {
	Name                       string       `json:"name"`
	StartTime                  time.Time    `json:"startTime"`
	EndTime                    time.Time    `json:"endTime"`
	IsDaytime                  bool         `json:"isDaytime"`
	Temperature                int          `json:"temperature"`
	TemperatureUnit            string       `json:"temperatureUnit"`
	WindSpeed                  string       `json:"windSpeed"`
	WindDirection              string       `json:"windDirection"`
	Icon                       string       `json:"icon"`
	ShortForecast              string       `json:"shortForecast"`
	DetailedForecast           string       `json:"detailedForecast"`
	ProbabilityOfPrecipitation quantitative `json:"probabilityOfPrecipitation"`
}

// quantitative is the NWS unit-tagged measurement envelope. Value is null
// when the sensor or model has no reading.
type quantitative struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

// alertsResponse is the subset of /alerts/active the client needs: the event
// type of each active alert feature.
type alertsResponse struct {
	Features []struct {
		Properties struct {
			Event string `json:"event"`
		} `json:"properties"`
	} `json:"features"`
}

// observationResponse is the subset of /stations/{id}/observations/latest the
// client needs.
type observationResponse struct {
	Properties struct {
		Timestamp        time.Time    `json:"timestamp"`
		TextDescription  string       `json:"textDescription"`
		Temperature      quantitative `json:"temperature"`
		WindSpeed        quantitative `json:"windSpeed"`
		RelativeHumidity quantitative `json:"relativeHumidity"`
	} `json:"properties"`
}
