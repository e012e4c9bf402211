package engine

import (
	"regexp"
	"strconv"
)

// heatIndexRe captures the first integer following the phrase "heat index",
// however much prose sits between them ("... heat index values as high as
// 105 ..."). Non-greedy so the nearest number wins.
var heatIndexRe = regexp.MustCompile(`(?is)heat index\D*?(\d+)`)

// highNearRe captures the forecast high from phrasing like "High near 91".
var highNearRe = regexp.MustCompile(`(?i)high near (\d+)`)

// HeatIndexValue extracts the heat-index integer from forecast text, or nil
// when the text carries no heat-index phrasing.
func HeatIndexValue(text string) *int {
	return firstInt(heatIndexRe, text)
}

// HighNearValue extracts the forecast high from "High near <N>" phrasing, or
// nil when absent. Future-period temperature and heat-index rules read this;
// current-period temperature uses the numeric observation instead.
func HighNearValue(text string) *int {
	return firstInt(highNearRe, text)
}

func firstInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
