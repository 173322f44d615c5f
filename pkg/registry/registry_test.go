package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func sampleRegistry() *ActivityRegistry {
	reg := New(testNow)
	reg.Activities = []Activity{
		{ID: "find-scholarships", DisplayName: "Find Scholarships", Category: "finder", TaskType: "find-scholarships", ImplementationStatus: StatusCompleted, Timeout: "5s"},
		{ID: "capture-lead", DisplayName: "Capture Lead", Category: "lead", TaskType: "capture-lead", ImplementationStatus: StatusPlanned},
	}
	return reg
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleRegistry().Validate())

	tests := []struct {
		name   string
		mutate func(r *ActivityRegistry)
		errMsg string
	}{
		{"empty", func(r *ActivityRegistry) { r.Activities = nil }, "registry contains no activities"},
		{"duplicate id", func(r *ActivityRegistry) { r.Activities[1].ID = "find-scholarships" }, "duplicate activity ID: find-scholarships"},
		{"missing task type", func(r *ActivityRegistry) { r.Activities[0].TaskType = "" }, "activity find-scholarships missing required field: TaskType"},
		{"shared task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = "find-scholarships" }, "activities find-scholarships and capture-lead share task type find-scholarships"},
		{"unknown status", func(r *ActivityRegistry) { r.Activities[0].ImplementationStatus = "done" }, `activity find-scholarships has unknown status "done"`},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "five" }, `activity find-scholarships has invalid timeout "five"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry()
			tt.mutate(reg)
			assert.EqualError(t, reg.Validate(), tt.errMsg)
		})
	}
}

func TestAddAndUpdate(t *testing.T) {
	reg := sampleRegistry()
	later := testNow.Add(time.Hour)

	require.NoError(t, reg.Add(Activity{ID: "manage-compare-list", DisplayName: "Compare", Category: "compare", TaskType: "manage-compare-list"}, later))
	assert.EqualError(t, reg.Add(Activity{ID: "capture-lead"}, later), "activity with ID capture-lead already exists")
	assert.Equal(t, "2026-04-01T10:00:00Z", reg.LastUpdated)

	require.NoError(t, reg.Update("capture-lead", "status", StatusVerified, later))
	require.NoError(t, reg.Update("capture-lead", "retries", "3", later))
	a, ok := reg.ByTaskType("capture-lead")
	require.True(t, ok)
	assert.Equal(t, StatusVerified, a.ImplementationStatus)
	assert.Equal(t, 3, a.Retries)

	assert.Error(t, reg.Update("capture-lead", "status", "finished", later))
	assert.Error(t, reg.Update("capture-lead", "retries", "many", later))
	assert.EqualError(t, reg.Update("capture-lead", "colour", "x", later), "unknown field: colour")
	assert.EqualError(t, reg.Update("missing", "version", "2", later), "activity with ID missing not found")
}

func TestTaskTypesAndMissing(t *testing.T) {
	reg := sampleRegistry()

	assert.Equal(t, []string{"capture-lead", "find-scholarships"}, reg.TaskTypes())
	assert.Equal(t, []string{"simulate-what-if"}, reg.Missing([]string{"find-scholarships", "simulate-what-if"}))
	assert.Empty(t, reg.Missing([]string{"capture-lead"}))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	reg := sampleRegistry()

	require.NoError(t, reg.Save(path))
	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg, loaded)
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	assert.Equal(t, []string{
		"capture-lead",
		"find-scholarships",
		"manage-compare-list",
		"search-scholarships",
		"simulate-what-if",
	}, reg.TaskTypes())
}
