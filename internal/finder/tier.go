package finder

// Tier is the qualitative fit label of a score.
type Tier string

const (
	TierNone     Tier = ""
	TierConsider Tier = "consider"
	TierHigh     Tier = "high fit"
	TierVeryGood Tier = "very good fit"
)

// Classify maps a score to its tier. Both result rendering and the what-if
// comparison go through this function.
func Classify(score int) Tier {
	switch {
	case score >= 5:
		return TierVeryGood
	case score >= 3:
		return TierHigh
	case score >= 1:
		return TierConsider
	default:
		return TierNone
	}
}

// Key is the presentation key of the tier.
func (t Tier) Key() string {
	switch t {
	case TierVeryGood:
		return "very-high"
	case TierHigh:
		return "high"
	case TierConsider:
		return "medium"
	default:
		return ""
	}
}

func (t Tier) Story() string {
	switch t {
	case TierVeryGood:
		return "Your chances are very high. Prepare your application and apply now."
	case TierHigh:
		return "You match many criteria. You should apply."
	case TierConsider:
		return "You meet some criteria. Check the detailed conditions."
	default:
		return ""
	}
}
