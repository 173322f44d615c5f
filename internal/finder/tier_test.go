package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		score int
		tier  Tier
		key   string
	}{
		{0, TierNone, ""},
		{1, TierConsider, "medium"},
		{2, TierConsider, "medium"},
		{3, TierHigh, "high"},
		{4, TierHigh, "high"},
		{5, TierVeryGood, "very-high"},
		{9, TierVeryGood, "very-high"},
	}

	for _, tt := range tests {
		tier := Classify(tt.score)
		assert.Equal(t, tt.tier, tier, "score %d", tt.score)
		assert.Equal(t, tt.key, tier.Key(), "score %d", tt.score)
	}
	assert.Empty(t, TierNone.Story())
	assert.NotEmpty(t, TierHigh.Story())
}

func TestNewReport(t *testing.T) {
	engine := NewEngine(newTestCatalog())

	in := Input{Gender: GenderFemale, Major: MajorIT, Award: AwardThird, ScoreDGNL: Float(82)}
	rep := NewReport(in, engine.Evaluate(in))

	assert.Equal(t, OutcomeMatched, rep.Outcome)
	assert.Nil(t, rep.Guidance)
	assert.Len(t, rep.Matches, 3)
	assert.Equal(t, SlugOneYear, rep.Matches[0].Slug)
	assert.Equal(t, "very-high", rep.Matches[0].TierKey)
	assert.Equal(t, "national award: third place, aptitude score ≥ 80%", rep.Matches[0].ReasonText)
	assert.Equal(t, "dgnl=82&gender=female&hsgqg=third-place&major=cntt", rep.Query)
}

func TestNewReport_Guidance(t *testing.T) {
	engine := NewEngine(newTestCatalog())

	empty := NewReport(Input{}, engine.Evaluate(Input{}))
	assert.Equal(t, OutcomeNoInput, empty.Outcome)
	if assert.NotNil(t, empty.Guidance) {
		assert.Empty(t, empty.Guidance.Suggestions)
	}

	low := Input{ScoreTN: Float(6)}
	noMatch := NewReport(low, engine.Evaluate(low))
	assert.Equal(t, OutcomeNoMatch, noMatch.Outcome)
	assert.Empty(t, noMatch.Matches)
	if assert.NotNil(t, noMatch.Guidance) {
		assert.Len(t, noMatch.Guidance.Suggestions, 4)
		assert.Equal(t, "#financial-aid", noMatch.Guidance.Link)
	}
}

func TestNewSimulationReport(t *testing.T) {
	engine := NewEngine(newTestCatalog())

	rep := NewSimulationReport(engine.Simulate(Input{ScoreTN: Float(8.6), ScoreDGNL: Float(85)}, Bonus{TN: 0.5, DGNL: 10}))

	assert.False(t, rep.NoChange)
	if assert.Len(t, rep.Changes, 1) {
		assert.Equal(t, ChangeNewMatch, rep.Changes[0].Kind)
		assert.Equal(t, SlugFullScholarship, rep.Changes[0].Slug)
		assert.Equal(t, TierHigh, rep.Changes[0].Tier)
	}
}
