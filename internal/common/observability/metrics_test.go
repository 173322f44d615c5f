package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := New("scholarship-workers-test", reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = obs.Shutdown(context.Background()) })

	obs.RecordRequest(context.Background(), "/api/finder", "GET", 200, 3*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["http_server_requests_total"], "families: %v", names)
	assert.True(t, names["http_server_duration_milliseconds"], "families: %v", names)

	for _, mf := range families {
		if mf.GetName() != "http_server_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		labels := map[string]string{}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "/api/finder", labels["route"])
		assert.Equal(t, "GET", labels["method"])
		assert.Equal(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue())
	}
}

func TestZeroValueIsSafe(t *testing.T) {
	var obs *Observability
	obs.RecordRequest(context.Background(), "/", "GET", 200, time.Millisecond)
	assert.NoError(t, obs.Shutdown(context.Background()))

	(&Observability{}).RecordRequest(context.Background(), "/", "GET", 200, time.Millisecond)
}
