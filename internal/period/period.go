// Package period decides which timesheet week is "current". A week is
// identified by the Friday that closes it; resolution never touches the
// database so it can be unit-tested against fixed clocks.
package period

import (
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

// Friday returns the Friday of the ISO week containing ref. Saturday and
// Sunday sit at the end of the ISO week, so they map back to the Friday
// just passed.
func Friday(ref time.Time) time.Time {
	iso := int(ref.Weekday())
	if iso == 0 {
		iso = 7 // Sunday
	}
	return dateOnly(ref).AddDate(0, 0, 5-iso)
}

// Editable reports whether a sheet with the given end date may still be
// written: its week must not have closed before the current one. The check
// is a pure function of end date and clock, recomputed on every call.
func Editable(endDate, now time.Time) bool {
	return !dateOnly(endDate).Before(Friday(now))
}

// ResolveCurrent picks the sheet representing the current week from the
// full candidate set owned by one employee.
//
// Order of preference:
//  1. exact match on this week's Friday; duplicates (which the uniqueness
//     constraint should prevent) resolve to the newest created, then the
//     highest id
//  2. smallest absolute day distance between end date and now; on a
//     distance tie a future-or-today end date beats a past one, and a
//     remaining tie goes to the later end date
//
// Returns nil when the employee has no sheets at all.
func ResolveCurrent(now time.Time, candidates []*domain.Timesheet) *domain.Timesheet {
	if len(candidates) == 0 {
		return nil
	}

	friday := Friday(now)
	var exact *domain.Timesheet
	for _, ts := range candidates {
		if !dateOnly(ts.EndDate).Equal(friday) {
			continue
		}
		if exact == nil || newerCreated(ts, exact) {
			exact = ts
		}
	}
	if exact != nil {
		return exact
	}

	today := dateOnly(now)
	best := candidates[0]
	for _, ts := range candidates[1:] {
		if closerTo(today, ts, best) {
			best = ts
		}
	}
	return best
}

func newerCreated(a, b *domain.Timesheet) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// closerTo reports whether a is a better "current week" fallback than b
// relative to today.
func closerTo(today time.Time, a, b *domain.Timesheet) bool {
	distA := absDays(today, a.EndDate)
	distB := absDays(today, b.EndDate)
	if distA != distB {
		return distA < distB
	}

	pastA := dateOnly(a.EndDate).Before(today)
	pastB := dateOnly(b.EndDate).Before(today)
	if pastA != pastB {
		return !pastA // equidistant: prefer the upcoming sheet
	}

	return dateOnly(a.EndDate).After(dateOnly(b.EndDate))
}

func absDays(a, b time.Time) int {
	d := int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
