package finder

// Scholarship slugs targeted by the rule table.
const (
	SlugFullScholarship = "full-scholarship"
	SlugTwoYear         = "two-year"
	SlugOneYear         = "one-year"
	SlugSTEMFemale      = "stem-female"
	SlugHighSchool      = "high-school"
	SlugGlobalExpert    = "global-expert"
)

// Rule awards Points to Slug when Match holds.
type Rule struct {
	Slug   string
	Points int
	Reason string
	Match  func(Input) bool
}

// RuleGroup is one input signal and the rules it drives. Present decides
// whether the signal counts as provided input, whether or not any rule
// matches. In a banded group the first matching rule wins.
type RuleGroup struct {
	Signal  string
	Banded  bool
	Present func(Input) bool
	Rules   []Rule
}

func awardIs(a Award) func(Input) bool {
	return func(in Input) bool { return in.Award == a }
}

func dgnlAtLeast(min float64) func(Input) bool {
	return func(in Input) bool { return in.ScoreDGNL != nil && *in.ScoreDGNL >= min }
}

func tnAtLeast(min float64) func(Input) bool {
	return func(in Input) bool { return in.ScoreTN != nil && *in.ScoreTN >= min }
}

func awardedIT(in Input) bool {
	return in.Award != AwardNone && in.Major == MajorIT
}

// DefaultRules returns the scoring table in evaluation order.
func DefaultRules() []RuleGroup {
	return []RuleGroup{
		{
			Signal:  "hsgqg",
			Banded:  true,
			Present: func(in Input) bool { return in.Award != AwardNone },
			Rules: []Rule{
				{Slug: SlugFullScholarship, Points: 3, Reason: "national award: first place", Match: awardIs(AwardFirst)},
				{Slug: SlugTwoYear, Points: 3, Reason: "national award: second place", Match: awardIs(AwardSecond)},
				{Slug: SlugOneYear, Points: 3, Reason: "national award: third place", Match: awardIs(AwardThird)},
			},
		},
		{
			Signal:  "dgnl",
			Banded:  true,
			Present: func(in Input) bool { return in.ScoreDGNL != nil },
			Rules: []Rule{
				{Slug: SlugFullScholarship, Points: 2, Reason: "aptitude score ≥ 90%", Match: dgnlAtLeast(90)},
				{Slug: SlugTwoYear, Points: 2, Reason: "aptitude score ≥ 85%", Match: dgnlAtLeast(85)},
				{Slug: SlugOneYear, Points: 2, Reason: "aptitude score ≥ 80%", Match: dgnlAtLeast(80)},
			},
		},
		{
			Signal:  "tn",
			Banded:  true,
			Present: func(in Input) bool { return in.ScoreTN != nil },
			Rules: []Rule{
				{Slug: SlugFullScholarship, Points: 1, Reason: "graduation score ≥ 9.0", Match: tnAtLeast(9.0)},
				{Slug: SlugTwoYear, Points: 1, Reason: "graduation score ≥ 8.5", Match: tnAtLeast(8.5)},
				{Slug: SlugOneYear, Points: 1, Reason: "graduation score ≥ 8.0", Match: tnAtLeast(8.0)},
			},
		},
		{
			Signal:  "female-it",
			Present: Input.femaleIT,
			Rules: []Rule{
				{Slug: SlugSTEMFemale, Points: 1, Reason: "female IT-major applicant", Match: Input.femaleIT},
			},
		},
		{
			Signal:  "top10-priority",
			Present: Input.topSchoolPriority,
			Rules: []Rule{
				{Slug: SlugHighSchool, Points: 1, Reason: "top-10 school rank + priority region (requires nomination)", Match: Input.topSchoolPriority},
			},
		},
		{
			Signal:  "award-it",
			Present: awardedIT,
			Rules: []Rule{
				{Slug: SlugGlobalExpert, Points: 2, Reason: "national award + IT major (requires interview)", Match: awardedIT},
			},
		},
		{
			// A chosen major is input on its own even though no rule scores it.
			Signal:  "major",
			Present: func(in Input) bool { return in.Major != MajorOther },
		},
	}
}
