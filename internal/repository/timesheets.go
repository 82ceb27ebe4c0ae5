package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/hours"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/period"
)

// GetAllTimesheets returns every timesheet with its rows, ordered by owner
// and then newest week first.
func (r *Repository) GetAllTimesheets() ([]*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			t.timesheet_id,
			t.employee_id,
			t.end_date,
			t.overtime_deci,
			t.flextime_deci,
			t.created_at,
			e.emp_number,
			e.user_name,
			e.name,
			e.email,
			e.role,
			tr.line_no,
			tr.project_id,
			tr.work_package_id,
			tr.packed_hours,
			tr.notes
		FROM timesheets t
		JOIN employees e ON e.employee_id = t.employee_id
		LEFT JOIN timesheet_rows tr ON tr.timesheet_id = t.timesheet_id
		ORDER BY t.employee_id, t.end_date DESC, tr.line_no
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all timesheets: %w", err)
	}
	defer rows.Close()

	sheets, err := collectTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("get all timesheets: %w", err)
	}

	return sheets, nil
}

// GetTimesheetsByEmployee returns the employee's timesheets with rows,
// newest week first.
func (r *Repository) GetTimesheetsByEmployee(emp *domain.Employee) ([]*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			t.timesheet_id,
			t.employee_id,
			t.end_date,
			t.overtime_deci,
			t.flextime_deci,
			t.created_at,
			e.emp_number,
			e.user_name,
			e.name,
			e.email,
			e.role,
			tr.line_no,
			tr.project_id,
			tr.work_package_id,
			tr.packed_hours,
			tr.notes
		FROM timesheets t
		JOIN employees e ON e.employee_id = t.employee_id
		LEFT JOIN timesheet_rows tr ON tr.timesheet_id = t.timesheet_id
		WHERE t.employee_id = $1
		ORDER BY t.end_date DESC, tr.line_no
	`

	rows, err := r.dbpool.QueryContext(ctx, query, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("get timesheets by employee: %w", err)
	}
	defer rows.Close()

	sheets, err := collectTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("get timesheets by employee: %w", err)
	}

	return sheets, nil
}

// GetCurrentTimesheet resolves the employee's current-week sheet over all
// of their existing periods. Returns nil when the employee has none.
func (r *Repository) GetCurrentTimesheet(emp *domain.Employee, now time.Time) (*domain.Timesheet, error) {
	sheets, err := r.GetTimesheetsByEmployee(emp)
	if err != nil {
		return nil, err
	}

	return period.ResolveCurrent(now, sheets), nil
}

// GetTimesheetByID loads a single timesheet with its rows, or nil when it
// does not exist.
func (r *Repository) GetTimesheetByID(id int64) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			t.timesheet_id,
			t.employee_id,
			t.end_date,
			t.overtime_deci,
			t.flextime_deci,
			t.created_at,
			e.emp_number,
			e.user_name,
			e.name,
			e.email,
			e.role,
			tr.line_no,
			tr.project_id,
			tr.work_package_id,
			tr.packed_hours,
			tr.notes
		FROM timesheets t
		JOIN employees e ON e.employee_id = t.employee_id
		LEFT JOIN timesheet_rows tr ON tr.timesheet_id = t.timesheet_id
		WHERE t.timesheet_id = $1
		ORDER BY tr.line_no
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get timesheet by id: %w", err)
	}
	defer rows.Close()

	sheets, err := collectTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("get timesheet by id: %w", err)
	}
	if len(sheets) == 0 {
		return nil, nil
	}

	return sheets[0], nil
}

// CreateCurrentWeek creates the employee's sheet for the week containing
// now, pre-filled with 5 blank rows so a grid has something to show. The
// unique (employee, end date) index rejects a second concurrent create;
// callers see that as a constraint error and should re-read instead.
func (r *Repository) CreateCurrentWeek(emp *domain.Employee, now time.Time) (*domain.Timesheet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create current week: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ts := &domain.Timesheet{
		EmployeeID: emp.ID,
		Employee:   emp,
		EndDate:    period.Friday(now),
		Rows:       domain.PlaceholderRows(5),
	}

	query := `
		INSERT INTO timesheets (employee_id, end_date, overtime_deci, flextime_deci)
		VALUES ($1, $2, 0, 0)
		RETURNING timesheet_id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, ts.EmployeeID, ts.EndDate).Scan(&ts.ID, &ts.CreatedAt); err != nil {
		return nil, fmt.Errorf("create current week: %w", err)
	}

	for i := range ts.Rows {
		if err := insertRow(ctx, tx, ts.ID, i+1, &ts.Rows[i]); err != nil {
			return nil, fmt.Errorf("create current week: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create current week: %w", err)
	}

	return ts, nil
}

// SaveTimesheet persists the header and the complete row set as one atomic
// unit. A sheet without identity is inserted and gets its id assigned; a
// known sheet has its header updated and its rows replaced wholesale,
// renumbered 1..N in the in-memory order. Any failure rolls the whole save
// back.
func (r *Repository) SaveTimesheet(ts *domain.Timesheet) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save timesheet: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if ts.EndDate.IsZero() {
		ts.EndDate = period.Friday(time.Now())
	}

	if ts.ID == 0 {
		query := `
			INSERT INTO timesheets (employee_id, end_date, overtime_deci, flextime_deci)
			VALUES ($1, $2, 0, 0)
			RETURNING timesheet_id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, ts.EmployeeID, ts.EndDate).Scan(&ts.ID, &ts.CreatedAt); err != nil {
			return fmt.Errorf("save timesheet: %w", err)
		}
	} else {
		// overtime/flextime are reserved columns, always written as zero
		query := `
			UPDATE timesheets
			SET end_date = $1, overtime_deci = 0, flextime_deci = 0
			WHERE timesheet_id = $2
			RETURNING timesheet_id
		`
		var updated int64
		if err := tx.QueryRowContext(ctx, query, ts.EndDate, ts.ID).Scan(&updated); err != nil {
			return fmt.Errorf("save timesheet: %w", err)
		}

		del := `DELETE FROM timesheet_rows WHERE timesheet_id = $1`
		if _, err := tx.ExecContext(ctx, del, ts.ID); err != nil {
			return fmt.Errorf("save timesheet: %w", err)
		}
	}

	for i := range ts.Rows {
		if err := insertRow(ctx, tx, ts.ID, i+1, &ts.Rows[i]); err != nil {
			return fmt.Errorf("save timesheet: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save timesheet: %w", err)
	}

	return nil
}

func insertRow(ctx context.Context, tx *sql.Tx, timesheetID int64, lineNo int, row *domain.TimesheetRow) error {
	query := `
		INSERT INTO timesheet_rows (timesheet_id, line_no, project_id, work_package_id, packed_hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	packed := int64(hours.Pack(row.Hours))
	args := []any{timesheetID, lineNo, row.ProjectID, row.WorkPackageID, packed, row.Notes}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

// collectTimesheets assembles joined header/row result sets, preserving
// the query's header order and each sheet's line order.
func collectTimesheets(rows *sql.Rows) ([]*domain.Timesheet, error) {
	sheets := make([]*domain.Timesheet, 0)
	byID := make(map[int64]*domain.Timesheet)

	for rows.Next() {
		var row struct {
			ID           int64
			EmployeeID   int64
			EndDate      time.Time
			OvertimeDeci int
			FlextimeDeci int
			CreatedAt    time.Time

			EmpNumber int
			UserName  string
			Name      string
			Email     string
			Role      string

			LineNo        sql.NullInt32
			ProjectID     sql.NullInt32
			WorkPackageID sql.NullString
			PackedHours   sql.NullInt64
			Notes         sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.EmployeeID,
			&row.EndDate,
			&row.OvertimeDeci,
			&row.FlextimeDeci,
			&row.CreatedAt,
			&row.EmpNumber,
			&row.UserName,
			&row.Name,
			&row.Email,
			&row.Role,
			&row.LineNo,
			&row.ProjectID,
			&row.WorkPackageID,
			&row.PackedHours,
			&row.Notes,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		ts, exists := byID[row.ID]
		if !exists {
			ts = &domain.Timesheet{
				ID:           row.ID,
				EmployeeID:   row.EmployeeID,
				EndDate:      row.EndDate,
				OvertimeDeci: row.OvertimeDeci,
				FlextimeDeci: row.FlextimeDeci,
				CreatedAt:    row.CreatedAt,
				Employee: &domain.Employee{
					ID:        row.EmployeeID,
					EmpNumber: row.EmpNumber,
					UserName:  row.UserName,
					Name:      row.Name,
					Email:     row.Email,
					Role:      domain.Role(row.Role),
				},
				Rows: make([]domain.TimesheetRow, 0),
			}
			byID[row.ID] = ts
			sheets = append(sheets, ts)
		}

		// a sheet without rows produces one all-NULL row tuple
		if !row.LineNo.Valid {
			continue
		}

		ts.Rows = append(ts.Rows, domain.TimesheetRow{
			ProjectID:     int(row.ProjectID.Int32),
			WorkPackageID: row.WorkPackageID.String,
			Hours:         hours.Unpack(uint64(row.PackedHours.Int64)),
			Notes:         row.Notes.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sheets, nil
}
