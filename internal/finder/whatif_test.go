package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_NewFullScholarship(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	baseline := Input{ScoreTN: Float(8.6), ScoreDGNL: Float(85)}

	sim := engine.Simulate(baseline, Bonus{TN: 0.5, DGNL: 10})

	assert.Equal(t, map[string]int{SlugTwoYear: 3}, scores(sim.Baseline))
	assert.Equal(t, map[string]int{SlugFullScholarship: 3}, scores(sim.Projected))
	require.Len(t, sim.Changes, 1)
	change := sim.Changes[0]
	assert.Equal(t, ChangeNewMatch, change.Kind)
	assert.Equal(t, SlugFullScholarship, change.Entry.Scholarship.Slug)
	assert.Equal(t, 3, change.Entry.Score)
	assert.Equal(t, TierHigh, change.Tier)
	assert.False(t, sim.NoChange())
	assert.Equal(t, "If TN rises by 0.5 and DGNL rises by 10 points, you could reach:", sim.Message())
}

func TestSimulate_TierUpgrade(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	// dgnl 79 -> 84 adds 2 to one-year: 3 -> 5
	baseline := Input{Award: AwardThird, ScoreDGNL: Float(79)}

	sim := engine.Simulate(baseline, Bonus{DGNL: 5})

	require.Len(t, sim.Changes, 1)
	change := sim.Changes[0]
	assert.Equal(t, ChangeTierUpgrade, change.Kind)
	assert.Equal(t, SlugOneYear, change.Entry.Scholarship.Slug)
	assert.Equal(t, 3, change.PreviousScore)
	assert.Equal(t, TierHigh, change.PreviousTier)
	assert.Equal(t, 5, change.Entry.Score)
	assert.Equal(t, TierVeryGood, change.Tier)
}

func TestSimulate_HigherScoreSameTierIsNotReported(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	baseline := Input{Award: AwardThird, ScoreTN: Float(7.9)}

	sim := engine.Simulate(baseline, Bonus{TN: 0.1})

	assert.Equal(t, map[string]int{SlugOneYear: 4}, scores(sim.Projected))
	assert.True(t, sim.NoChange())
	assert.Equal(t, MessageNoChange, sim.Message())
}

func TestSimulate_MissingScoresStayMissing(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	baseline := Input{Award: AwardSecond}

	sim := engine.Simulate(baseline, Bonus{TN: 1.0, DGNL: 15})

	assert.Equal(t, scores(sim.Baseline), scores(sim.Projected))
	assert.True(t, sim.NoChange())
}

func TestSimulate_FromSentinelEverythingIsNew(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	baseline := engine.Evaluate(Input{})
	require.True(t, baseline.NoInput)

	sim := engine.SimulateFrom(baseline, Input{ScoreTN: Float(8.0)}, Bonus{})

	require.Len(t, sim.Changes, 1)
	assert.Equal(t, ChangeNewMatch, sim.Changes[0].Kind)
}

func TestSimulate_NoInputStaysNoChange(t *testing.T) {
	engine := NewEngine(newTestCatalog())

	sim := engine.Simulate(Input{}, Bonus{TN: 1, DGNL: 15})

	assert.True(t, sim.Projected.NoInput)
	assert.True(t, sim.NoChange())
	assert.NotNil(t, sim.Changes)
}

func TestSimulate_FromMatchesSimulate(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	in := Input{ScoreTN: Float(8.4), ScoreDGNL: Float(84), Gender: GenderFemale, Major: MajorIT}
	bonus := Bonus{TN: 0.5, DGNL: 5}

	assert.Equal(t, engine.Simulate(in, bonus), engine.SimulateFrom(engine.Evaluate(in), in, bonus))
}

func TestSimulate_NegativeBonusIsIgnored(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	in := Input{ScoreTN: Float(9.0)}

	sim := engine.Simulate(in, Bonus{TN: -2, DGNL: -10})

	assert.Equal(t, Bonus{}, sim.Bonus)
	assert.Equal(t, scores(sim.Baseline), scores(sim.Projected))
}

func total(r Result) int {
	sum := 0
	for _, e := range r.Entries {
		sum += e.Score
	}
	return sum
}

// A bonus can move a banded signal to a higher band and so shift its points
// to another slug, but the points contributed overall never drop.
func TestSimulate_BonusNeverLowersTotalPoints(t *testing.T) {
	engine := NewEngine(newTestCatalog())

	for _, tn := range []float64{7.5, 7.9, 8.0, 8.4, 8.5, 8.9, 9.0} {
		for _, dgnl := range []float64{75, 79, 80, 84, 85, 89, 90} {
			in := Input{ScoreTN: Float(tn), ScoreDGNL: Float(dgnl), Award: AwardThird}
			for _, b := range []Bonus{{TN: 0.5}, {DGNL: 5}, {TN: 1.0, DGNL: 15}} {
				sim := engine.Simulate(in, b)
				assert.GreaterOrEqual(t, total(sim.Projected), total(sim.Baseline), "tn=%v dgnl=%v bonus=%+v", tn, dgnl, b)
			}
		}
	}
}

func TestSimulate_BonusWithinBandKeepsSlugScores(t *testing.T) {
	engine := NewEngine(newTestCatalog())
	in := Input{ScoreTN: Float(8.5), ScoreDGNL: Float(85)}

	sim := engine.Simulate(in, Bonus{TN: 0.4, DGNL: 4})

	assert.Equal(t, scores(sim.Baseline), scores(sim.Projected))
	assert.True(t, sim.NoChange())
}

func TestBonus_ApplyRoundsNoise(t *testing.T) {
	out := Bonus{TN: 0.1}.Apply(Input{ScoreTN: Float(7.9)})

	require.NotNil(t, out.ScoreTN)
	assert.Equal(t, 8.0, *out.ScoreTN)
	assert.Nil(t, out.ScoreDGNL)
}

func TestBonus_Describe(t *testing.T) {
	assert.Equal(t, "TN rises by 1", Bonus{TN: 1}.Describe())
	assert.Equal(t, "DGNL rises by 15 points", Bonus{DGNL: 15}.Describe())
	assert.Equal(t, "", Bonus{}.Describe())
}

func TestBonusLimits_Options(t *testing.T) {
	assert.Equal(t, BonusOptions{TN: []float64{0, 0.5, 1}, DGNL: []float64{0, 5, 10, 15}}, BonusLimits{}.Options())
	assert.Equal(t, BonusOptions{TN: []float64{0, 0.5}, DGNL: []float64{0, 5, 10}}, BonusLimits{TN: 0.5, DGNL: 12}.Options())

	for _, v := range (BonusLimits{TN: 2, DGNL: 20}).Options().TN {
		assert.NoError(t, BonusLimits{TN: 2, DGNL: 20}.Check(Bonus{TN: v}))
	}
	assert.Equal(t, "0, 5, 10, 15", JoinOptions(DGNLBonusOptions))
}

func TestBonusLimits_Check(t *testing.T) {
	limits := BonusLimits{TN: 2, DGNL: 20}

	assert.NoError(t, limits.Check(Bonus{TN: 2, DGNL: 20}))
	assert.NoError(t, BonusLimits{}.Check(Bonus{TN: 50, DGNL: 500}))
	assert.EqualError(t, limits.Check(Bonus{TN: 2.5}), "StandardError[WHATIF_BONUS_INVALID]: What-if bonus is out of range: bonusTn 2.5 exceeds 2")
	assert.Error(t, limits.Check(Bonus{DGNL: 21}))
	assert.Error(t, limits.Check(Bonus{TN: -1}))
}
