package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "find-scholarships"})

	log.Info("scoring completed", map[string]interface{}{
		"matches": 2,
		"cause":   errors.New("boom"),
		"jobKey":  int64(42),
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "find-scholarships", ctx["taskType"])
	assert.Equal(t, int64(2), ctx["matches"])
	assert.Equal(t, int64(42), ctx["jobKey"])
	assert.Equal(t, "boom", ctx["cause"])
}

func TestZapWrapper_WithError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithError(errors.New("redis down")).Warn("cache unavailable", nil)
	log.Debug("dropped", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "redis down", entries[0].ContextMap()["error"])
}

func TestNew_FallsBackToInfo(t *testing.T) {
	l := New("verbose", "console")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
