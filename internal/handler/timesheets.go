package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/auth"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/period"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/utils"
)

type timesheetRowView struct {
	ProjectID     int                        `json:"projectId"`
	WorkPackageID string                     `json:"workPackageId"`
	Hours         [domain.DaysInWeek]float64 `json:"hours"`
	Notes         string                     `json:"notes"`
}

type timesheetView struct {
	ID           int64              `json:"id"`
	EmpNumber    int                `json:"empNumber"`
	EmployeeName string             `json:"employeeName"`
	EndDate      string             `json:"endDate"`
	Editable     bool               `json:"editable"`
	Rows         []timesheetRowView `json:"rows"`
}

func newTimesheetView(ts *domain.Timesheet, now time.Time) timesheetView {
	view := timesheetView{
		ID:       ts.ID,
		EndDate:  ts.EndDate.Format("2006-01-02"),
		Editable: period.Editable(ts.EndDate, now),
		Rows:     make([]timesheetRowView, 0, len(ts.Rows)),
	}
	if ts.Employee != nil {
		view.EmpNumber = ts.Employee.EmpNumber
		view.EmployeeName = ts.Employee.Name
	}
	for _, row := range ts.Rows {
		view.Rows = append(view.Rows, timesheetRowView{
			ProjectID:     row.ProjectID,
			WorkPackageID: row.WorkPackageID,
			Hours:         row.Hours,
			Notes:         row.Notes,
		})
	}
	return view
}

func newTimesheetViews(sheets []*domain.Timesheet, now time.Time) []timesheetView {
	views := make([]timesheetView, 0, len(sheets))
	for _, ts := range sheets {
		views = append(views, newTimesheetView(ts, now))
	}
	return views
}

func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(CallerCtx).(*domain.Employee)

	var (
		sheets []*domain.Timesheet
		err    error
	)
	if auth.IsAdmin(caller) {
		sheets, err = h.repository.GetAllTimesheets()
	} else {
		sheets, err = h.repository.GetTimesheetsByEmployee(caller)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "timesheets", newTimesheetViews(sheets, time.Now()))
}

func (h *Handler) GetCurrentTimesheet(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(CallerCtx).(*domain.Employee)

	ts, err := h.repository.GetCurrentTimesheet(caller, time.Now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if ts == nil {
		h.errorResponse(w, r, http.StatusNotFound, "no timesheets yet")
		return
	}

	h.successResponse(w, r, "current timesheet", newTimesheetView(ts, time.Now()))
}

func (h *Handler) CreateCurrentWeekTimesheet(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(CallerCtx).(*domain.Employee)

	ts, err := h.repository.CreateCurrentWeek(caller, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "timesheets_employee_id_end_date_key":
			h.errorResponse(w, r, http.StatusConflict, "a timesheet for the current week already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.createdResponse(w, r, "timesheet created", newTimesheetView(ts, time.Now()))
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(CallerCtx).(*domain.Employee)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if !auth.CanAccessTimesheet(caller, ts) {
		h.errorResponse(w, r, http.StatusForbidden, "you are not allowed to view this timesheet")
		return
	}

	h.successResponse(w, r, "timesheet", newTimesheetView(ts, time.Now()))
}

func (h *Handler) UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	caller := r.Context().Value(CallerCtx).(*domain.Employee)
	ts := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if !auth.CanAccessTimesheet(caller, ts) {
		h.errorResponse(w, r, http.StatusForbidden, "you are not allowed to update this timesheet")
		return
	}

	if !period.Editable(ts.EndDate, time.Now()) {
		h.errorResponse(w, r, http.StatusForbidden, "timesheet is no longer editable (past week)")
		return
	}

	var req struct {
		EndDate string `json:"endDate"`
		Rows    []struct {
			ProjectID     int       `json:"projectId"`
			WorkPackageID string    `json:"workPackageId"`
			Hours         []float64 `json:"hours"`
			Notes         string    `json:"notes"`
		} `json:"rows" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// hand the proposed rows to the grid validator exactly as entered
	edits := make([]utils.RowEdit, 0, len(req.Rows))
	for _, row := range req.Rows {
		edit := utils.RowEdit{
			ProjectID:     row.ProjectID,
			WorkPackageID: row.WorkPackageID,
			Notes:         row.Notes,
		}
		for d := 0; d < domain.DaysInWeek && d < len(row.Hours); d++ {
			edit.Cells[d] = strconv.FormatFloat(row.Hours[d], 'f', -1, 64)
		}
		edits = append(edits, edit)
	}

	if err := utils.ValidateTimesheetGrid(edits); err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid end date")
			return
		}
		ts.EndDate = endDate
	}

	ts.Rows = utils.BuildTimesheetRows(edits)

	if err := h.repository.SaveTimesheet(ts); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "timesheets_employee_id_end_date_key":
			h.errorResponse(w, r, http.StatusConflict, "a timesheet for that week already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "timesheet updated", newTimesheetView(ts, time.Now()))
}
