package managecomparelist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"scholarship-workers/internal/catalog"
	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/compare"
	"scholarship-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := catalog.NewStore([]models.Scholarship{
		{Slug: "one-year", Name: "One-year", HighlightBenefit: "1 year", QuotaLabel: "300 places"},
		{Slug: "two-year", Name: "Two-year", HighlightBenefit: "2 years"},
	})
	require.NoError(t, err)

	svc := compare.NewService(compare.NewRedisStore(client, time.Hour), store)
	return NewHandler(&Config{Timeout: time.Second}, svc, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestHandler_ProcessLifecycle(t *testing.T) {
	h := createTestHandler(t)
	ctx := context.Background()

	out, err := h.process(ctx, `{"sessionId": "abc", "action": "add", "slug": "one-year"}`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	out, err = h.process(ctx, `{"sessionId": "abc", "action": "add", "slug": "two-year"}`)
	require.NoError(t, err)
	require.Len(t, out.Table, 2)
	assert.Equal(t, "two-year", out.Table[0].Slug)
	assert.Equal(t, compare.QuotaFallback, out.Table[0].Quota)
	assert.Equal(t, "300 places", out.Table[1].Quota)

	out, err = h.process(ctx, `{"sessionId": "abc", "action": "remove", "slug": "two-year"}`)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	out, err = h.process(ctx, `{"sessionId": "abc", "action": "list"}`)
	require.NoError(t, err)
	assert.Equal(t, "one-year", out.Items[0].Slug)

	out, err = h.process(ctx, `{"sessionId": "abc", "action": "clear"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.NotNil(t, out.Items)
}

func TestHandler_ProcessErrors(t *testing.T) {
	h := createTestHandler(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		variables string
		code      errors.ErrorCode
	}{
		{"missing session", `{"action": "list"}`, errors.ErrCodeCompareInvalid},
		{"unknown action", `{"sessionId": "abc", "action": "sort"}`, errors.ErrCodeCompareInvalid},
		{"bad session", `{"sessionId": "a b", "action": "list"}`, errors.ErrCodeCompareInvalid},
		{"add without slug", `{"sessionId": "abc", "action": "add"}`, errors.ErrCodeCompareInvalid},
		{"unknown slug", `{"sessionId": "abc", "action": "add", "slug": "retired"}`, errors.ErrCodeScholarshipNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.process(ctx, tt.variables)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}

	_, err := h.process(ctx, `{"sessionId": "abc", "action": "add", "slug": "one-year"}`)
	require.NoError(t, err)
	_, err = h.process(ctx, `{"sessionId": "abc", "action": "add", "slug": "one-year"}`)
	assert.Equal(t, errors.ErrCodeCompareDuplicate, errors.CodeOf(err))
}
