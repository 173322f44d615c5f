package finder

import (
	"math"
	"strconv"
	"strings"
)

// MessageNoChange is reported when a simulation changes nothing.
const MessageNoChange = "No change at this adjustment level."

// Bonus is a hypothetical increase of the exam scores.
type Bonus struct {
	TN   float64 `json:"tn"`
	DGNL float64 `json:"dgnl"`
}

// Bonus presets offered to visitors.
var (
	TNBonusOptions   = []float64{0, 0.5, 1.0}
	DGNLBonusOptions = []float64{0, 5, 10, 15}
)

func (b Bonus) normalized() Bonus {
	return Bonus{TN: nonNegative(b.TN), DGNL: nonNegative(b.DGNL)}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Apply adds the bonus to the scores that are present. Missing scores stay
// missing.
func (b Bonus) Apply(in Input) Input {
	b = b.normalized()
	out := in
	if in.ScoreTN != nil {
		out.ScoreTN = Float(roundScore(*in.ScoreTN + b.TN))
	}
	if in.ScoreDGNL != nil {
		out.ScoreDGNL = Float(roundScore(*in.ScoreDGNL + b.DGNL))
	}
	return out
}

// roundScore drops binary representation noise so that 7.9+0.1 lands on 8.
func roundScore(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// Describe renders the bonus as a condition phrase, e.g. "TN rises by 0.5 and
// DGNL rises by 10 points".
func (b Bonus) Describe() string {
	b = b.normalized()
	parts := make([]string, 0, 2)
	if b.TN > 0 {
		parts = append(parts, "TN rises by "+formatNumber(b.TN))
	}
	if b.DGNL > 0 {
		parts = append(parts, "DGNL rises by "+formatNumber(b.DGNL)+" points")
	}
	return strings.Join(parts, " and ")
}

type ChangeKind string

const (
	ChangeNewMatch    ChangeKind = "new"
	ChangeTierUpgrade ChangeKind = "upgrade"
)

// Change is one reportable difference between a baseline and a projected run.
// Previous fields are zero for new matches.
type Change struct {
	Kind          ChangeKind `json:"kind"`
	Entry         ScoreEntry `json:"entry"`
	Tier          Tier       `json:"tier"`
	PreviousScore int        `json:"previousScore,omitempty"`
	PreviousTier  Tier       `json:"previousTier,omitempty"`
}

type Simulation struct {
	Bonus     Bonus    `json:"bonus"`
	Baseline  Result   `json:"baseline"`
	Projected Result   `json:"projected"`
	Changes   []Change `json:"changes"`
}

// NoChange reports that the simulation ran and found nothing to report.
func (s Simulation) NoChange() bool {
	return len(s.Changes) == 0
}

func (s Simulation) Message() string {
	if s.NoChange() {
		return MessageNoChange
	}
	if cond := s.Bonus.Describe(); cond != "" {
		return "If " + cond + ", you could reach:"
	}
	return "You could reach:"
}

// Simulate evaluates in, then in with the bonus applied, and reports the
// differences.
func (e *Engine) Simulate(in Input, bonus Bonus) Simulation {
	return e.SimulateFrom(e.Evaluate(in), in, bonus)
}

// SimulateFrom is Simulate with an already computed baseline for in.
func (e *Engine) SimulateFrom(baseline Result, in Input, bonus Bonus) Simulation {
	bonus = bonus.normalized()
	projected := e.Evaluate(bonus.Apply(in.Normalize()))

	return Simulation{
		Bonus:     bonus,
		Baseline:  baseline,
		Projected: projected,
		Changes:   Diff(baseline, projected),
	}
}

// Diff lists new matches and tier upgrades of projected over baseline, in
// projected rank order.
func Diff(baseline, projected Result) []Change {
	changes := make([]Change, 0)
	for _, entry := range projected.Ranked() {
		prev, ok := baseline.Get(entry.Scholarship.Slug)
		if baseline.NoInput || !ok {
			changes = append(changes, Change{
				Kind:  ChangeNewMatch,
				Entry: entry,
				Tier:  entry.Tier(),
			})
			continue
		}
		if entry.Score > prev.Score && entry.Tier() != prev.Tier() {
			changes = append(changes, Change{
				Kind:          ChangeTierUpgrade,
				Entry:         entry,
				Tier:          entry.Tier(),
				PreviousScore: prev.Score,
				PreviousTier:  prev.Tier(),
			})
		}
	}
	return changes
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
