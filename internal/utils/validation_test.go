package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func TestParseHourCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"8", 8},
		{"7.5", 7.5},
		{" 7.5 ", 7.5},
		{"7.25", 7.3},
		{"-3", 0},
		{"30", 24},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseHourCell(c.in), "ParseHourCell(%q)", c.in)
	}
}

func TestValidateTimesheetGrid_DayCap(t *testing.T) {
	t.Parallel()

	// two rows summing to 25 h on Saturday
	edits := []RowEdit{
		{ProjectID: 100, WorkPackageID: "AA123", Cells: [domain.DaysInWeek]string{domain.Sat: "13"}},
		{ProjectID: 200, WorkPackageID: "BB456", Cells: [domain.DaysInWeek]string{domain.Sat: "12"}},
	}

	err := ValidateTimesheetGrid(edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total for Sat exceeds 24 hours")
}

func TestValidateTimesheetGrid_WeekCap(t *testing.T) {
	t.Parallel()

	// 24 h on all seven days in each of two rows: every day cap trips and
	// so does the weekly cap, all reported together
	full := [domain.DaysInWeek]string{"24", "24", "24", "24", "24", "24", "24"}
	edits := []RowEdit{
		{ProjectID: 100, WorkPackageID: "AA123", Cells: full},
		{ProjectID: 200, WorkPackageID: "BB456", Cells: full},
	}

	err := ValidateTimesheetGrid(edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly total exceeds 168 hours")
	for _, day := range []string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"} {
		assert.Contains(t, err.Error(), "total for "+day+" exceeds 24 hours")
	}
}

func TestValidateTimesheetGrid_ExactCapsPass(t *testing.T) {
	t.Parallel()

	// exactly 24 h per day and exactly 168 h for the week is allowed
	full := [domain.DaysInWeek]string{"24", "24", "24", "24", "24", "24", "24"}
	edits := []RowEdit{{ProjectID: 100, WorkPackageID: "AA123", Cells: full}}

	assert.NoError(t, ValidateTimesheetGrid(edits))
}

func TestValidateTimesheetGrid_DuplicateRows(t *testing.T) {
	t.Parallel()

	edits := []RowEdit{
		{ProjectID: 100, WorkPackageID: "wp-1"},
		{ProjectID: 200, WorkPackageID: "wp-1"}, // different project, fine
		{ProjectID: 100, WorkPackageID: " WP-1 "}, // same pair, case and spacing differ
	}

	err := ValidateTimesheetGrid(edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows 1 and 3")
}

func TestValidateTimesheetGrid_PlaceholdersMayRepeat(t *testing.T) {
	t.Parallel()

	edits := []RowEdit{
		{ProjectID: 100, WorkPackageID: "AA123"},
		{}, // spare line
		{}, // spare line
		{},
	}

	assert.NoError(t, ValidateTimesheetGrid(edits))
}

func TestValidateTimesheetGrid_TotalsReportedBeforeUniqueness(t *testing.T) {
	t.Parallel()

	// grid violates both rules; only the totals violation is reported
	edits := []RowEdit{
		{ProjectID: 100, WorkPackageID: "AA123", Cells: [domain.DaysInWeek]string{domain.Mon: "20"}},
		{ProjectID: 100, WorkPackageID: "AA123", Cells: [domain.DaysInWeek]string{domain.Mon: "20"}},
	}

	err := ValidateTimesheetGrid(edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total for Mon exceeds 24 hours")
	assert.False(t, strings.Contains(err.Error(), "duplicate"), "uniqueness should not be checked while totals fail")
}

func TestBuildTimesheetRows(t *testing.T) {
	t.Parallel()

	edits := []RowEdit{
		{
			ProjectID:     100,
			WorkPackageID: "AA123",
			Cells:         [domain.DaysInWeek]string{domain.Mon: "8", domain.Tue: "7.25", domain.Wed: "garbage"},
			Notes:         "regular week",
		},
	}

	rows := BuildTimesheetRows(edits)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].ProjectID)
	assert.Equal(t, "AA123", rows[0].WorkPackageID)
	assert.Equal(t, "regular week", rows[0].Notes)
	assert.Equal(t, 8.0, rows[0].Hours[domain.Mon])
	assert.Equal(t, 7.3, rows[0].Hours[domain.Tue])
	assert.Equal(t, 0.0, rows[0].Hours[domain.Wed])
}
