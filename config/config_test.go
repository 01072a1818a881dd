package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/attendance-engine/config"
	"github.com/phoenix/attendance-engine/reconcile"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaults_Shape(t *testing.T) {
	s := config.Defaults()

	// Every bucket has a department rule; the shared-id buckets carry their
	// disambiguating management areas.
	for _, b := range reconcile.Buckets {
		assert.NotEmpty(t, s.Departments[b].DeptIDs, "bucket %s", b)
	}
	assert.Equal(t, "27", s.Departments[reconcile.BucketICQA].ManagementAreaID)
	assert.Equal(t, "22", s.Departments[reconcile.BucketCRETs].ManagementAreaID)

	// Both shifts have a full week of corner codes.
	for _, shift := range []string{"Day", "Night"} {
		assert.Len(t, s.ShiftSchedule[shift], 7, "shift %s", shift)
	}

	assert.InDelta(t, 10, s.VacationMinHours, 0)
	assert.InDelta(t, 12, s.BankedHolidayMinHours, 0)
	assert.Equal(t, 3, s.NewHireDays)
	assert.Equal(t, 2, s.CornerPrefixLen)
	assert.NotEmpty(t, s.PlannedHeadcount["YDD2"])
	assert.NotEmpty(t, s.PlannedHeadcount["YHM2"])
}

func TestDefaults_FreshValuePerCall(t *testing.T) {
	a := config.Defaults()
	a.PresentMarkers[0] = "MUTATED"

	b := config.Defaults()
	assert.Equal(t, "X", b.PresentMarkers[0])
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	s, err := config.LoadSettings(filepath.Join(t.TempDir(), "absent.json"), discard())

	require.NoError(t, err)
	assert.Equal(t, config.Defaults().PresentMarkers, s.PresentMarkers)
}

func TestLoadSettings_OverlayOnDefaults(t *testing.T) {
	// GIVEN an override file that only changes one threshold
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vacation_min_hours": 8}`), 0o644))

	s, err := config.LoadSettings(path, discard())

	// THEN the override applies and everything else keeps its default
	require.NoError(t, err)
	assert.InDelta(t, 8, s.VacationMinHours, 0)
	assert.InDelta(t, 12, s.BankedHolidayMinHours, 0)
	assert.NotEmpty(t, s.Departments)
}

func TestLoadSettings_MalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := config.LoadSettings(path, discard())

	assert.Error(t, err)
}
