package domain

import (
	"time"
)

// Days of a timesheet week, Saturday first. Every 7-element hour vector in
// the system is indexed this way.
const (
	Sat = iota
	Sun
	Mon
	Tue
	Wed
	Thu
	Fri
)

const DaysInWeek = 7

// Timesheet is one employee week, keyed by the Friday that closes it.
// At most one sheet may exist per (employee, end date) pair; the database
// enforces this with a unique constraint.
type Timesheet struct {
	ID           int64          `json:"id"`
	EmployeeID   int64          `json:"-"`
	Employee     *Employee      `json:"-"`
	EndDate      time.Time      `json:"endDate"`
	OvertimeDeci int            `json:"-"`
	FlextimeDeci int            `json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	Rows         []TimesheetRow `json:"rows"`
}

// TimesheetRow is one project/work-package line. Rows have no identity of
// their own: the repository rewrites the whole set on every save.
type TimesheetRow struct {
	ProjectID     int                 `json:"projectId"`
	WorkPackageID string              `json:"workPackageId"`
	Hours         [DaysInWeek]float64 `json:"hours"`
	Notes         string              `json:"notes"`
}

// IsPlaceholder reports whether the row is an unused spare line (no project
// and no work package). Placeholder rows are exempt from uniqueness checks.
func (r *TimesheetRow) IsPlaceholder() bool {
	return r.ProjectID == 0 && r.WorkPackageID == ""
}

// PlaceholderRows returns n blank rows, used to pre-fill a fresh timesheet.
func PlaceholderRows(n int) []TimesheetRow {
	rows := make([]TimesheetRow, n)
	return rows
}
