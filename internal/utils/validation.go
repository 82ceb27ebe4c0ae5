package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/hours"
)

var dayNames = [domain.DaysInWeek]string{"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"}

const (
	dayCapHours  = 24.0
	weekCapHours = 168.0
	capTolerance = 1e-6
)

// RowEdit is one proposed timesheet line exactly as entered: raw cell text
// per day plus the identifying fields. Nothing is persisted until the whole
// grid passes validation.
type RowEdit struct {
	ProjectID     int
	WorkPackageID string
	Cells         [domain.DaysInWeek]string
	Notes         string
}

// ParseHourCell turns raw cell text into a canonical hour value. Blank or
// unparsable input counts as zero, out-of-range values are clamped, and the
// result is snapped to the storage resolution. Cell parsing never fails.
func ParseHourCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return hours.Round(hours.Clamp(v))
}

// ValidateTimesheetGrid checks a proposed edit against the hour caps and
// the (project, work package) uniqueness rule. Totals are checked first and
// every over-cap day is reported together with the weekly cap; only when
// the totals pass is uniqueness evaluated, again reporting every duplicate
// pair found. A non-nil result means the save must be rejected outright.
func ValidateTimesheetGrid(edits []RowEdit) error {
	if err := validateTotals(edits); err != nil {
		return err
	}
	return validateUniqueProjectWP(edits)
}

func validateTotals(edits []RowEdit) error {
	var dayTotals [domain.DaysInWeek]float64
	for _, edit := range edits {
		for d := domain.Sat; d <= domain.Fri; d++ {
			dayTotals[d] += ParseHourCell(edit.Cells[d])
		}
	}

	var violations []error
	weekTotal := 0.0
	for d := domain.Sat; d <= domain.Fri; d++ {
		weekTotal += dayTotals[d]
		if dayTotals[d] > dayCapHours+capTolerance {
			violations = append(violations, fmt.Errorf("total for %s exceeds 24 hours (%.1f h)", dayNames[d], dayTotals[d]))
		}
	}
	if weekTotal > weekCapHours+capTolerance {
		violations = append(violations, fmt.Errorf("weekly total exceeds 168 hours (%.1f h)", weekTotal))
	}

	return errors.Join(violations...)
}

func validateUniqueProjectWP(edits []RowEdit) error {
	var violations []error
	firstSeenAtRow := make(map[string]int)

	for i, edit := range edits {
		wp := strings.TrimSpace(edit.WorkPackageID)

		// spare rows are allowed to repeat
		row := domain.TimesheetRow{ProjectID: edit.ProjectID, WorkPackageID: wp}
		if row.IsPlaceholder() {
			continue
		}

		key := fmt.Sprintf("%d||%s", edit.ProjectID, strings.ToUpper(wp))
		if other, dup := firstSeenAtRow[key]; dup {
			violations = append(violations, fmt.Errorf("duplicate project/work package: project %d with WP %q appears in rows %d and %d", edit.ProjectID, wp, other, i+1))
			continue
		}
		firstSeenAtRow[key] = i + 1
	}

	return errors.Join(violations...)
}

// BuildTimesheetRows converts a validated grid into model rows, parsing
// every cell with the same clamping rules the validator used.
func BuildTimesheetRows(edits []RowEdit) []domain.TimesheetRow {
	rows := make([]domain.TimesheetRow, 0, len(edits))
	for _, edit := range edits {
		row := domain.TimesheetRow{
			ProjectID:     edit.ProjectID,
			WorkPackageID: edit.WorkPackageID,
			Notes:         edit.Notes,
		}
		for d := domain.Sat; d <= domain.Fri; d++ {
			row.Hours[d] = ParseHourCell(edit.Cells[d])
		}
		rows = append(rows, row)
	}
	return rows
}
