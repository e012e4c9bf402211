package outlook

import (
	"fmt"
	"strings"

	"fieldwatch/internal/types"
)

// NoConcernsSummary is the summary text when no rule matched.
const NoConcernsSummary = "No current or upcoming weather concerns at this time."

// Summary renders an assessment as plain text suitable for a Slack message:
// a risk line, the current recommendations, and the upcoming predictions.
func Summary(a types.Assessment, nextPractice string) string {
	if len(a.NowMatches) == 0 && len(a.FutureMatches) == 0 {
		return NoConcernsSummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Practice weather check (next practice %s)\n", nextPractice)
	fmt.Fprintf(&b, "Driving risk: %s / Venue risk: %s\n", a.DrivingRisk, a.VenueRisk)

	if len(a.NowMatches) > 0 {
		b.WriteString("\nCurrent alert recommendations:\n")
		for _, m := range a.NowMatches {
			fmt.Fprintf(&b, "• %s: %s → %s\n", m.Condition, m.Value, m.Action)
		}
	}
	if len(a.FutureMatches) > 0 {
		b.WriteString("\nUpcoming alert predictions:\n")
		for _, m := range a.FutureMatches {
			fmt.Fprintf(&b, "• %s, %s: %s → %s\n", m.When, m.Condition, m.Value, m.Action)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
