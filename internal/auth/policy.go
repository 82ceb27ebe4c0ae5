package auth

import (
	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func IsAdmin(emp *domain.Employee) bool {
	return emp != nil && emp.Role == domain.RoleAdmin
}

// CanAccessTimesheet applies the owner-or-admin rule. The requester must be
// authenticated; admins may reach any sheet, everyone else only their own.
func CanAccessTimesheet(requester *domain.Employee, ts *domain.Timesheet) bool {
	if requester == nil || ts == nil {
		return false
	}
	if IsAdmin(requester) {
		return true
	}
	return ts.EmployeeID == requester.ID
}
