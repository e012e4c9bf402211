package policy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldwatch/internal/types"
)

const validPolicy = `{
  "rules": [
    {"condition": "weather_alert", "type": "Winter Storm Warning", "action": "Cancel practice"},
    {"condition": "wind_speed", "threshold": 20, "action": "Secure the nets"},
    {"condition": "rain_rate", "threshold_pct": 50, "action": "Move practice indoors"},
    {"condition": "temperature", "comparison": ">=", "threshold": 95, "action": "Mandatory water breaks"}
  ]
}`

func TestParseValidPolicy(t *testing.T) {
	doc, err := Parse([]byte(validPolicy))
	require.NoError(t, err)
	require.Len(t, doc.Rules, 4)

	assert.Equal(t, CondWeatherAlert, doc.Rules[0].Condition)
	assert.Equal(t, "Winter Storm Warning", doc.Rules[0].Type)
	assert.Equal(t, 20.0, doc.Rules[1].Threshold)
	assert.Equal(t, 50.0, doc.Rules[2].ThresholdPct)
	assert.Equal(t, CompareGTE, doc.Rules[3].Comparison)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"rules": [`},
		{"no rules", `{"rules": []}`},
		{"missing action", `{"rules": [{"condition": "wind_speed", "threshold": 20}]}`},
		{"missing condition", `{"rules": [{"action": "do something"}]}`},
		{"bad comparison", `{"rules": [{"condition": "temperature", "comparison": "==", "threshold": 32, "action": "x"}]}`},
		{"pct out of range", `{"rules": [{"condition": "rain_rate", "threshold_pct": 150, "action": "x"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			require.Error(t, err)

			var appErr *types.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, types.ErrCodeValidationPolicy, appErr.Code)
		})
	}
}

func TestParseAllowsUnknownConditionKinds(t *testing.T) {
	doc, err := Parse([]byte(`{"rules": [{"condition": "solar_flare", "action": "panic calmly"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "solar_flare", doc.Rules[0].Condition)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	require.NoError(t, os.WriteFile(path, []byte(validPolicy), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Rules, 4)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeValidationPolicy, appErr.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
