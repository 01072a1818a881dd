package reconcile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/attendance-engine/config"
	"github.com/phoenix/attendance-engine/reconcile"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func testSettings() reconcile.Settings {
	return config.Defaults()
}

func rosterRow(id, dept, area, typ, corner string) reconcile.Record {
	return reconcile.Record{
		"Employee ID":        id,
		"Department ID":      dept,
		"Management Area ID": area,
		"Employment Type":    typ,
		"Corner":             corner,
	}
}

func mytimeRow(id, flag string) reconcile.Record {
	return reconcile.Record{"Employee ID": id, "On Premise": flag}
}

// =============================================================================
// ROSTER BUILDER
// =============================================================================

func TestBuildRoster_Basics(t *testing.T) {
	// GIVEN roster rows with messy ids and mixed employment text
	rows := []reconcile.Record{
		rosterRow("00101", "1211010", "", "Amazon Full Time", "DB-0730"),
		rosterRow("102.0", "1211030", "", "Randstad Temp", "DN"),
		rosterRow("", "1211010", "", "Amazon", "DB"), // unjoinable, dropped
	}

	// WHEN the roster is built
	profiles, err := reconcile.BuildRoster(rows, testSettings())

	// THEN ids are normalized, employment classified, and the empty id dropped
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "101", profiles[0].ID)
	assert.Equal(t, reconcile.EmploymentAMZN, profiles[0].EmploymentType)
	assert.Equal(t, "102", profiles[1].ID)
	assert.Equal(t, reconcile.EmploymentTEMP, profiles[1].EmploymentType)
	for _, p := range profiles {
		assert.False(t, p.OnPremises, "roster must never set presence")
	}
}

func TestBuildRoster_UnknownEmploymentType(t *testing.T) {
	rows := []reconcile.Record{rosterRow("1", "1211010", "", "Mystery Corp", "DB")}

	profiles, err := reconcile.BuildRoster(rows, testSettings())

	require.NoError(t, err)
	assert.Equal(t, reconcile.EmploymentUnknown, profiles[0].EmploymentType)
}

func TestBuildRoster_CornerFromShiftPattern(t *testing.T) {
	// GIVEN a roster with no corner column, only a shift pattern
	rows := []reconcile.Record{{
		"Employee ID":   "7",
		"Department ID": "1211010",
		"Shift Pattern": "db0730-fri",
	}}

	profiles, err := reconcile.BuildRoster(rows, testSettings())

	// THEN the corner is the uppercased fixed-length prefix
	require.NoError(t, err)
	assert.Equal(t, "DB", profiles[0].CornerCode)
}

func TestBuildRoster_MissingRequiredColumns(t *testing.T) {
	s := testSettings()

	_, err := reconcile.BuildRoster(nil, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingInput)

	// No id column.
	_, err = reconcile.BuildRoster([]reconcile.Record{{"Department ID": "1", "Corner": "DB"}}, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingColumn)

	// No department column.
	_, err = reconcile.BuildRoster([]reconcile.Record{{"Employee ID": "1", "Corner": "DB"}}, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingColumn)

	// Neither corner nor shift pattern.
	_, err = reconcile.BuildRoster([]reconcile.Record{{"Employee ID": "1", "Department ID": "1211010"}}, s)
	require.Error(t, err)
	var mc *reconcile.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "roster", mc.Source)
}

// =============================================================================
// PRESENCE RESOLVER
// =============================================================================

func TestResolvePresence_MarkersAndDuplicates(t *testing.T) {
	// GIVEN duplicate time-clock rows where only one carries a present marker
	rows := []reconcile.Record{
		mytimeRow("101", ""),
		mytimeRow("101", "X"),
		mytimeRow("102", "no"),
		mytimeRow("103", "yes"),
	}

	onPrem, err := reconcile.ResolvePresence(rows, testSettings())

	// THEN flags OR together across duplicates and markers are case-insensitive
	require.NoError(t, err)
	assert.True(t, onPrem["101"])
	assert.False(t, onPrem["102"])
	assert.True(t, onPrem["103"])
}

func TestResolvePresence_MissingColumnsFatal(t *testing.T) {
	s := testSettings()

	_, err := reconcile.ResolvePresence(nil, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingInput)

	_, err = reconcile.ResolvePresence([]reconcile.Record{{"Employee ID": "1"}}, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingColumn)

	_, err = reconcile.ResolvePresence([]reconcile.Record{{"On Premise": "X"}}, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingColumn)
}

func TestApplyPresence(t *testing.T) {
	roster := []reconcile.WorkerProfile{{ID: "101"}, {ID: "102"}}

	out := reconcile.ApplyPresence(roster, map[string]bool{"101": true})

	assert.True(t, out[0].OnPremises)
	assert.False(t, out[1].OnPremises)
	assert.False(t, roster[0].OnPremises, "input roster must not be mutated")
}
