// Package policy models the declarative rule document that drives weather
// evaluation. A policy is a flat list of condition/action rules loaded once
// per process from a JSON file; rule order determines the order of match
// records but not correctness.
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"fieldwatch/internal/types"
)

// Condition kinds understood by the evaluation engine. A rule may carry any
// condition string; kinds outside this set are legal and simply never match.
const (
	CondWeatherAlert     = "weather_alert"
	CondSnowAccumulation = "snow_accumulation"
	CondIceAccumulation  = "ice_accumulation"
	CondRainRate         = "rain_rate"
	CondWindSpeed        = "wind_speed"
	CondHailWarning      = "hail_warning"
	CondVisibility       = "visibility"
	CondTemperature      = "temperature"
	CondHeatIndex        = "heat_index"
	CondAirQualityIndex  = "air_quality_index"
)

// Comparison operators accepted by threshold rules.
const (
	CompareLTE = "<="
	CompareGTE = ">="
)

// Rule is one configured condition + action pair. Only the fields relevant to
// the rule's condition kind are populated; irrelevant or missing fields
// produce no match rather than an error.
type Rule struct {
	Condition    string  `json:"condition" validate:"required"`
	Type         string  `json:"type,omitempty"`
	Threshold    float64 `json:"threshold,omitempty"`
	Comparison   string  `json:"comparison,omitempty" validate:"omitempty,oneof=<= >="`
	ThresholdPct float64 `json:"threshold_pct,omitempty" validate:"gte=0,lte=100"`
	Action       string  `json:"action" validate:"required"`
}

// Document is the top-level policy file structure.
type Document struct {
	Rules []Rule `json:"rules" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Validate checks the structural constraints of the document. It does not
// reject unknown condition kinds; those are inert by design.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return types.NewAppError(
			types.ErrCodeValidationPolicy,
			fmt.Sprintf("policy document failed validation: %v", err),
			err,
		)
	}
	return nil
}

// Load reads and validates a policy document from the given JSON file.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeValidationPolicy,
			fmt.Sprintf("failed to read policy file %s", path),
			err,
		)
	}
	return Parse(raw)
}

// Parse decodes and validates a policy document from raw JSON.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeValidationPolicy,
			"policy file is not valid JSON",
			err,
		)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
