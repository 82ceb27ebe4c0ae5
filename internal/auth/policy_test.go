package auth

import (
	"testing"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func TestCanAccessTimesheet(t *testing.T) {
	t.Parallel()

	owner := &domain.Employee{ID: 1, Role: domain.RoleUser}
	other := &domain.Employee{ID: 2, Role: domain.RoleUser}
	admin := &domain.Employee{ID: 3, Role: domain.RoleAdmin}
	ts := &domain.Timesheet{ID: 10, EmployeeID: 1}

	if !CanAccessTimesheet(owner, ts) {
		t.Error("owner should access their own timesheet")
	}
	if CanAccessTimesheet(other, ts) {
		t.Error("a non-owner regular employee should be denied")
	}
	if !CanAccessTimesheet(admin, ts) {
		t.Error("an admin should access any timesheet")
	}
	if CanAccessTimesheet(nil, ts) {
		t.Error("a nil requester should be denied")
	}
	if CanAccessTimesheet(owner, nil) {
		t.Error("a nil timesheet should be denied")
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	if IsAdmin(&domain.Employee{Role: domain.RoleUser}) {
		t.Error("regular employee misreported as admin")
	}
	if !IsAdmin(&domain.Employee{Role: domain.RoleAdmin}) {
		t.Error("admin not recognised")
	}
	if IsAdmin(nil) {
		t.Error("nil employee misreported as admin")
	}
}
