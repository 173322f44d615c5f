package finder

import "strings"

// Match is a ranked entry flattened for rendering.
type Match struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	HighlightBenefit string   `json:"highlightBenefit"`
	ExternalLink     string   `json:"externalLink,omitempty"`
	Score            int      `json:"score"`
	Tier             Tier     `json:"tier"`
	TierKey          string   `json:"tierKey"`
	Story            string   `json:"story"`
	Reasons          []string `json:"reasons"`
	ReasonText       string   `json:"reasonText"`
}

// Report is the rendered form of a Result.
type Report struct {
	Outcome  Outcome   `json:"outcome"`
	Matches  []Match   `json:"matches"`
	Guidance *Guidance `json:"guidance,omitempty"`
	Query    string    `json:"shareQuery,omitempty"`
}

func NewMatch(e ScoreEntry) Match {
	tier := e.Tier()
	return Match{
		Slug:             e.Scholarship.Slug,
		Name:             e.Scholarship.Name,
		HighlightBenefit: e.Scholarship.HighlightBenefit,
		ExternalLink:     e.Scholarship.ExternalLink,
		Score:            e.Score,
		Tier:             tier,
		TierKey:          tier.Key(),
		Story:            tier.Story(),
		Reasons:          append([]string(nil), e.Reasons...),
		ReasonText:       strings.Join(e.Reasons, ", "),
	}
}

// NewReport ranks r and attaches guidance when there is nothing to rank.
func NewReport(in Input, r Result) Report {
	ranked := r.Ranked()
	rep := Report{
		Outcome: r.Outcome(),
		Matches: make([]Match, 0, len(ranked)),
		Query:   EncodeShare(in),
	}
	for _, e := range ranked {
		rep.Matches = append(rep.Matches, NewMatch(e))
	}
	if g, ok := GuidanceFor(r); ok {
		rep.Guidance = &g
	}
	return rep
}

// ChangeView is a what-if change flattened for rendering.
type ChangeView struct {
	Kind             ChangeKind `json:"kind"`
	Slug             string     `json:"slug"`
	Name             string     `json:"name"`
	HighlightBenefit string     `json:"highlightBenefit"`
	Score            int        `json:"score"`
	Tier             Tier       `json:"tier"`
	PreviousScore    int        `json:"previousScore,omitempty"`
	PreviousTier     Tier       `json:"previousTier,omitempty"`
}

type SimulationReport struct {
	NoChange bool         `json:"noChange"`
	Message  string       `json:"message"`
	Bonus    Bonus        `json:"bonus"`
	Changes  []ChangeView `json:"changes"`
}

func NewSimulationReport(s Simulation) SimulationReport {
	rep := SimulationReport{
		NoChange: s.NoChange(),
		Message:  s.Message(),
		Bonus:    s.Bonus,
		Changes:  make([]ChangeView, 0, len(s.Changes)),
	}
	for _, c := range s.Changes {
		rep.Changes = append(rep.Changes, ChangeView{
			Kind:             c.Kind,
			Slug:             c.Entry.Scholarship.Slug,
			Name:             c.Entry.Scholarship.Name,
			HighlightBenefit: c.Entry.Scholarship.HighlightBenefit,
			Score:            c.Entry.Score,
			Tier:             c.Tier,
			PreviousScore:    c.PreviousScore,
			PreviousTier:     c.PreviousTier,
		})
	}
	return rep
}
