package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/attendance-engine/reconcile"
)

const day = "2026-08-28"

func leaveRow(id, date, code, hours string) reconcile.Record {
	return reconcile.Record{
		"Employee ID": id,
		"Date":        date,
		"Pay Code":    code,
		"Hours":       hours,
	}
}

// =============================================================================
// VACATION / BANKED HOLIDAY
// =============================================================================

func TestExtractLeave_Thresholds(t *testing.T) {
	// GIVEN leave rows straddling both thresholds
	rows := []reconcile.Record{
		leaveRow("1", day, "Vacation", "10"),      // at vacation threshold
		leaveRow("2", day, "PTO", "9.5"),          // under threshold
		leaveRow("3", day, "Banked Holiday", "12"),
		leaveRow("4", day, "Holiday", "11"),       // under banked threshold, no vacation code
		leaveRow("5", "2026-08-27", "PTO", "12"),  // wrong day
		leaveRow("6", day, "Sick", "12"),          // unmatched code
	}

	// WHEN leave is extracted for the selected day
	vacation, banked, err := reconcile.ExtractLeave(rows, day, testSettings())

	// THEN only over-threshold rows on the day land in a set
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, vacation.List())
	assert.Equal(t, []string{"3"}, banked.List())
}

func TestExtractLeave_BankedBeatsVacation(t *testing.T) {
	// A code matching both vocabularies ("VACATION HOLIDAY") with enough hours
	// is banked holiday, never both.
	rows := []reconcile.Record{leaveRow("9", day, "Vacation Holiday", "12")}

	vacation, banked, err := reconcile.ExtractLeave(rows, day, testSettings())

	require.NoError(t, err)
	assert.True(t, banked.Has("9"))
	assert.False(t, vacation.Has("9"))
}

func TestExtractLeave_UnparseableHours(t *testing.T) {
	rows := []reconcile.Record{
		leaveRow("1", day, "PTO", "ten"),
		leaveRow("2", day, "PTO", "12.0 hrs"), // unit noise stripped
	}

	vacation, _, err := reconcile.ExtractLeave(rows, day, testSettings())

	require.NoError(t, err)
	assert.False(t, vacation.Has("1"), "unparseable hours count as zero")
	assert.True(t, vacation.Has("2"))
}

func TestExtractLeave_OptionalFileButRequiredColumns(t *testing.T) {
	s := testSettings()

	// No file at all: empty sets, no error.
	vacation, banked, err := reconcile.ExtractLeave(nil, day, s)
	require.NoError(t, err)
	assert.Empty(t, vacation)
	assert.Empty(t, banked)

	// Supplied file with unresolvable columns: fatal.
	_, _, err = reconcile.ExtractLeave([]reconcile.Record{{"Mystery": "x"}}, day, s)
	assert.ErrorIs(t, err, reconcile.ErrMissingColumn)
}

// =============================================================================
// VET / VTO
// =============================================================================

func oppRow(id, typ, date, count string) reconcile.Record {
	return reconcile.Record{
		"employeeId":                id,
		"opportunity.type":          typ,
		"acceptanceTime":            date,
		"opportunity.acceptedCount": count,
		"opportunity.id":            "opp-" + id + "-" + typ,
	}
}

func TestExtractOpportunities_AcceptanceGating(t *testing.T) {
	rows := []reconcile.Record{
		oppRow("1", "VTO Offer", day, "1"),
		oppRow("2", "VET Opportunity", day, "0"), // not accepted
		oppRow("3", "VET Opportunity", day, "2"),
		oppRow("4", "Overtime", day, "1"),        // unclassifiable type
		oppRow("5", "VTO Offer", "2026-08-01", "1"), // wrong day
	}

	vto, vet, err := reconcile.ExtractOpportunities(rows, day, testSettings())

	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, vto.List())
	assert.Equal(t, []string{"3"}, vet.List())
}

func TestExtractOpportunities_FlagAcceptance(t *testing.T) {
	// isAccepted flag alone, without a count column value.
	row := reconcile.Record{
		"employeeId":       "8",
		"opportunity.type": "VET",
		"acceptanceTime":   day,
		"isAccepted":       "true",
	}

	_, vet, err := reconcile.ExtractOpportunities([]reconcile.Record{row}, day, testSettings())

	require.NoError(t, err)
	assert.True(t, vet.Has("8"))
}

func TestExtractOpportunities_DatePriority(t *testing.T) {
	// GIVEN a row whose acceptance time is unparseable but whose created-at
	// matches the day
	row := reconcile.Record{
		"employeeId":                "5",
		"opportunity.type":          "VTO",
		"acceptanceTime":            "pending",
		"opportunityCreatedAt":      day + "T03:00:00",
		"opportunity.postedDate":    "2026-08-01",
		"opportunity.acceptedCount": "1",
	}

	vto, _, err := reconcile.ExtractOpportunities([]reconcile.Record{row}, day, testSettings())

	// THEN the first parseable date in priority order decides the day
	require.NoError(t, err)
	assert.True(t, vto.Has("5"))
}

func TestExtractOpportunities_DedupeAndVTOPriority(t *testing.T) {
	// GIVEN duplicate acceptance rows and a worker accepted for both types
	rows := []reconcile.Record{
		oppRow("1", "VET", day, "1"),
		oppRow("1", "VET", day, "1"), // duplicate
		oppRow("1", "VTO", day, "1"),
	}

	vto, vet, err := reconcile.ExtractOpportunities(rows, day, testSettings())

	// THEN VTO wins: removal from the expected cohort beats addition
	require.NoError(t, err)
	assert.True(t, vto.Has("1"))
	assert.False(t, vet.Has("1"))
}

// =============================================================================
// SHIFT SWAPS
// =============================================================================

func swapRow(id, status, skip, work string) reconcile.Record {
	return reconcile.Record{
		"Employee 1 ID": id,
		"Status":        status,
		"Date to Skip":  skip,
		"Date to Work":  work,
	}
}

func TestExtractSwaps_RoleByDate(t *testing.T) {
	rows := []reconcile.Record{
		swapRow("1", "Approved", day, ""),          // swap out
		swapRow("2", "Approved", "", day),          // swap in
		swapRow("3", "Approved", day, day),         // both roles from one row
		swapRow("4", "Denied", day, ""),            // not approved
		swapRow("5", "Approved", "2026-08-01", ""), // wrong day
	}

	out, in, err := reconcile.ExtractSwaps(rows, day, testSettings().SwapMapping)

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, out.List())
	assert.Equal(t, []string{"2", "3"}, in.List())
}

func TestExtractSwaps_StatusColumnOptional(t *testing.T) {
	// A file with no status column treats every row as approved.
	rows := []reconcile.Record{{
		"Employee 1 ID": "9",
		"Date to Skip":  day,
	}}

	out, _, err := reconcile.ExtractSwaps(rows, day, testSettings().SwapMapping)

	require.NoError(t, err)
	assert.True(t, out.Has("9"))
}

func TestCollectSwaps_UnionAcrossFiles(t *testing.T) {
	// GIVEN an "out" file containing a row that is actually a swap-in
	outFile := []reconcile.Record{
		swapRow("1", "Approved", day, ""),
		swapRow("2", "Approved", "", day),
	}
	inFile := []reconcile.Record{
		swapRow("3", "Completed", "", day),
	}

	out, in, err := reconcile.CollectSwaps(outFile, inFile, day, testSettings().SwapMapping)

	// THEN role is decided by date, not by file
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, out.List())
	assert.Equal(t, []string{"2", "3"}, in.List())
}
