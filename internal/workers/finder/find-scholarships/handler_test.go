package findscholarships

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/finder"
	"scholarship-workers/internal/models"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	var defs []models.Scholarship
	for _, slug := range []string{
		finder.SlugFullScholarship, finder.SlugTwoYear, finder.SlugOneYear,
		finder.SlugSTEMFemale, finder.SlugHighSchool, finder.SlugGlobalExpert,
	} {
		defs = append(defs, models.Scholarship{Slug: slug, Name: "Scholarship " + slug, HighlightBenefit: "benefit"})
	}
	store, err := catalog.NewStore(defs)
	require.NoError(t, err)

	cfg := &Config{Timeout: 5 * time.Second, ShareBaseURL: "https://example.edu/finder"}
	return NewHandler(cfg, finder.NewEngine(store), createTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Input: finder.Input{
		Award:     finder.AwardFirst,
		ScoreDGNL: finder.Float(92),
		ScoreTN:   finder.Float(9.2),
	}})
	require.NoError(t, err)

	assert.Equal(t, finder.OutcomeMatched, out.Outcome)
	require.Equal(t, 1, out.MatchCount)
	assert.Equal(t, finder.SlugFullScholarship, out.Matches[0].Slug)
	assert.Equal(t, 6, out.Matches[0].Score)
	assert.Equal(t, "very-high", out.Matches[0].TierKey)
	assert.Nil(t, out.Guidance)
	assert.Equal(t, "dgnl=92&hsgqg=first-place&tn=9.2", out.ShareQuery)
	assert.Equal(t, "https://example.edu/finder?dgnl=92&hsgqg=first-place&tn=9.2", out.ShareURL)
}

func TestHandler_ExecuteShareQueryWins(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Input:      finder.Input{Award: finder.AwardFirst},
		ShareQuery: "?tn=8.1",
	})
	require.NoError(t, err)

	require.Len(t, out.Matches, 1)
	assert.Equal(t, finder.SlugOneYear, out.Matches[0].Slug)
}

func TestHandler_ExecuteGuidance(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, finder.OutcomeNoInput, out.Outcome)
	require.NotNil(t, out.Guidance)
	assert.Empty(t, out.Matches)
	assert.Equal(t, "https://example.edu/finder", out.ShareURL)

	out, err = h.Execute(context.Background(), &Input{Input: finder.Input{ScoreTN: finder.Float(7)}})
	require.NoError(t, err)
	assert.Equal(t, finder.OutcomeNoMatch, out.Outcome)
	require.NotNil(t, out.Guidance)
}

func TestHandler_ExecuteErrors(t *testing.T) {
	h := createTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assert.Equal(t, errors.ErrCodeFinderInputInvalid, errors.CodeOf(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Execute(ctx, &Input{})
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{"empty object", `{}`, false},
		{"full input with process variables", `{"scoreTn": 8.5, "scoreDgnl": 86, "hsgqg": "nhi", "gender": "female", "major": "cntt", "top10SchoolRank": true, "priorityRegion1": false, "applicantId": "a-1"}`, false},
		{"null scores", `{"scoreTn": null, "scoreDgnl": null}`, false},
		{"share query", `{"shareQuery": "tn=9&dgnl=90"}`, false},
		{"score out of range", `{"scoreTn": 11}`, true},
		{"score as string", `{"scoreDgnl": "90"}`, true},
		{"flag as string", `{"top10SchoolRank": "yes"}`, true},
		{"not json", `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeFinderInputInvalid, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.NotNil(t, input)
		})
	}
}

func TestHandler_ParseInputLegacyAward(t *testing.T) {
	h := createTestHandler(t)

	input, err := h.parseInput(`{"hsgqg": "nhi", "scoreTn": 8.6}`)
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "hsgqg=second-place&tn=8.6", out.ShareQuery)
}
