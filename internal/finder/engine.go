package finder

import (
	"sort"

	"scholarship-workers/internal/models"
)

// Catalog resolves scholarship slugs. Implementations must be safe for
// concurrent reads.
type Catalog interface {
	Lookup(slug string) (models.Scholarship, bool)
}

// ScoreEntry is the accumulated score of one scholarship.
type ScoreEntry struct {
	Scholarship models.Scholarship `json:"scholarship"`
	Reasons     []string           `json:"reasons"`
	Score       int                `json:"score"`

	seq int
}

// Tier classifies the entry score.
func (e ScoreEntry) Tier() Tier {
	return Classify(e.Score)
}

// Result is the outcome of one evaluation. A Result with NoInput set means no
// recognized signal was present; it is distinct from an evaluated result with
// zero entries.
type Result struct {
	NoInput bool                  `json:"noInput"`
	Entries map[string]ScoreEntry `json:"entries"`
}

type Outcome string

const (
	OutcomeNoInput Outcome = "no_input"
	OutcomeNoMatch Outcome = "no_match"
	OutcomeMatched Outcome = "matched"
)

func (r Result) Outcome() Outcome {
	switch {
	case r.NoInput:
		return OutcomeNoInput
	case len(r.Entries) == 0:
		return OutcomeNoMatch
	default:
		return OutcomeMatched
	}
}

// Get returns the entry for slug.
func (r Result) Get(slug string) (ScoreEntry, bool) {
	e, ok := r.Entries[slug]
	return e, ok
}

// Ranked returns entries by descending score. Equal scores keep the order in
// which the scholarships first matched.
func (r Result) Ranked() []ScoreEntry {
	out := make([]ScoreEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Engine scores inputs against a fixed catalog. It holds no mutable state, so
// one Engine may serve any number of concurrent evaluations.
type Engine struct {
	catalog Catalog
	rules   []RuleGroup
}

func NewEngine(catalog Catalog) *Engine {
	return NewEngineWithRules(catalog, DefaultRules())
}

func NewEngineWithRules(catalog Catalog, rules []RuleGroup) *Engine {
	return &Engine{catalog: catalog, rules: rules}
}

// Evaluate runs every rule group against in. Within a banded group only the
// first matching rule applies; points for the same slug accumulate across
// groups. Slugs missing from the catalog are skipped.
func (e *Engine) Evaluate(in Input) Result {
	in = in.Normalize()

	acc := make(map[string]*ScoreEntry)
	hasInput := false

	for _, group := range e.rules {
		if group.Present == nil || !group.Present(in) {
			continue
		}
		hasInput = true

		for _, rule := range group.Rules {
			if !rule.Match(in) {
				continue
			}
			e.add(acc, rule)
			if group.Banded {
				break
			}
		}
	}

	if !hasInput {
		return Result{NoInput: true}
	}

	entries := make(map[string]ScoreEntry, len(acc))
	for slug, entry := range acc {
		if entry.Score > 0 {
			entries[slug] = *entry
		}
	}
	return Result{Entries: entries}
}

func (e *Engine) add(acc map[string]*ScoreEntry, rule Rule) {
	if entry, ok := acc[rule.Slug]; ok {
		entry.Reasons = append(entry.Reasons, rule.Reason)
		entry.Score += rule.Points
		return
	}

	scholarship, ok := e.catalog.Lookup(rule.Slug)
	if !ok {
		return
	}
	acc[rule.Slug] = &ScoreEntry{
		Scholarship: scholarship,
		Reasons:     []string{rule.Reason},
		Score:       rule.Points,
		seq:         len(acc),
	}
}
