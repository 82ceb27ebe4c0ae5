package handler

type ContextKey string

var (
	CallerCtx       ContextKey = "caller"
	EmployeeInfoCtx ContextKey = "employeeInfo"
	TimesheetCtx    ContextKey = "timesheet"
)
