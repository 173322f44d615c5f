package finder

import (
	"fmt"
	"strings"

	"scholarship-workers/internal/common/errors"
)

// BonusLimits caps the bonus accepted from callers. A zero limit is no cap.
type BonusLimits struct {
	TN   float64
	DGNL float64
}

// BonusOptions are the bonus steps a visitor can pick from.
type BonusOptions struct {
	TN   []float64 `json:"tn"`
	DGNL []float64 `json:"dgnl"`
}

// Options returns the bonus presets that pass Check.
func (l BonusLimits) Options() BonusOptions {
	return BonusOptions{
		TN:   withinLimit(TNBonusOptions, l.TN),
		DGNL: withinLimit(DGNLBonusOptions, l.DGNL),
	}
}

func withinLimit(presets []float64, limit float64) []float64 {
	out := make([]float64, 0, len(presets))
	for _, v := range presets {
		if limit > 0 && v > limit {
			continue
		}
		out = append(out, v)
	}
	return out
}

// JoinOptions renders presets as "0, 0.5, 1".
func JoinOptions(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ", ")
}

func (l BonusLimits) Check(b Bonus) error {
	if b.TN < 0 || b.DGNL < 0 {
		return errors.NewWhatIfBonusInvalidError("bonus must not be negative")
	}
	if l.TN > 0 && b.TN > l.TN {
		return errors.NewWhatIfBonusInvalidError(fmt.Sprintf("bonusTn %s exceeds %s", formatNumber(b.TN), formatNumber(l.TN)))
	}
	if l.DGNL > 0 && b.DGNL > l.DGNL {
		return errors.NewWhatIfBonusInvalidError(fmt.Sprintf("bonusDgnl %s exceeds %s", formatNumber(b.DGNL), formatNumber(l.DGNL)))
	}
	return nil
}
