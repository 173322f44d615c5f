package finder

// Guidance is the informational message shown instead of a ranked list.
type Guidance struct {
	Title       string   `json:"title"`
	Suggestions []string `json:"suggestions,omitempty"`
	Link        string   `json:"link,omitempty"`
}

var (
	noInputGuidance = Guidance{
		Title: "Enter at least one piece of information (score, award or major) to see scholarship suggestions.",
	}

	noMatchGuidance = Guidance{
		Title: "You have not reached the threshold of the main scholarships yet.",
		Suggestions: []string{
			"Raise your graduation exam score to 8.0 or higher",
			"Raise your aptitude exam score to 80 or higher",
			"Compete in the national excellence competition",
			"Look into the study now, pay later program",
		},
		Link: "#financial-aid",
	}
)

// GuidanceFor returns the message for results without matches. ok is false
// when the result has matches to rank.
func GuidanceFor(r Result) (g Guidance, ok bool) {
	switch r.Outcome() {
	case OutcomeNoInput:
		return noInputGuidance, true
	case OutcomeNoMatch:
		g = noMatchGuidance
		g.Suggestions = append([]string(nil), noMatchGuidance.Suggestions...)
		return g, true
	default:
		return Guidance{}, false
	}
}
