package engine

import "regexp"

// Category identifies one family of hazardous-weather phrasing in NWS
// forecast text.
type Category string

const (
	CategorySnow Category = "snow"
	CategoryRain Category = "rain"
	CategoryIce  Category = "ice"
	CategoryHail Category = "hail"
	CategoryFog  Category = "fog"
	CategoryHeat Category = "heat"
)

// phrasePatterns maps each category to its ordered set of case-insensitive
// patterns. A text belongs to a category when any pattern matches anywhere in
// it. The phrasing is fixed domain knowledge drawn from NWS forecast
// discussion wording; it is deliberately data, not evaluator logic, so it can
// be tested and extended on its own.
var phrasePatterns = map[Category][]*regexp.Regexp{
	CategorySnow: {
		regexp.MustCompile(`(?i)\bsnow\b`),
		regexp.MustCompile(`(?i)wintry mix`),
		regexp.MustCompile(`(?i)snowfall of \d+`),
	},
	CategoryRain: {
		regexp.MustCompile(`(?i)\brain\b`),
		regexp.MustCompile(`(?i)showers`),
		regexp.MustCompile(`(?i)precipitation`),
	},
	CategoryIce: {
		regexp.MustCompile(`(?i)freezing rain`),
		regexp.MustCompile(`(?i)\bice\b`),
		regexp.MustCompile(`(?i)icy conditions`),
	},
	CategoryHail: {
		regexp.MustCompile(`(?i)hail`),
	},
	CategoryFog: {
		regexp.MustCompile(`(?i)fog`),
		regexp.MustCompile(`(?i)low visibility`),
		regexp.MustCompile(`(?i)dense fog`),
	},
	CategoryHeat: {
		regexp.MustCompile(`(?is)heat index.*?\d+`),
		regexp.MustCompile(`(?i)hot and humid`),
	},
}

// Mentions reports whether the text matches any pattern of the category.
// Unknown categories never match.
func Mentions(text string, cat Category) bool {
	for _, p := range phrasePatterns[cat] {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
