// internal/workers/finder/simulate-what-if/models.go
package simulatewhatif

import "scholarship-workers/internal/finder"

type Input struct {
	finder.Input
	ShareQuery string  `json:"shareQuery,omitempty"`
	BonusTN    float64 `json:"bonusTn"`
	BonusDGNL  float64 `json:"bonusDgnl"`
}

type Output struct {
	BaselineOutcome finder.Outcome      `json:"baselineOutcome"`
	NoChange        bool                `json:"noChange"`
	Message         string              `json:"message"`
	Bonus           finder.Bonus        `json:"bonus"`
	Changes         []finder.ChangeView `json:"changes"`
}
