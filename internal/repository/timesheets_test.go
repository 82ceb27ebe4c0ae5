package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/config"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/hours"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/period"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	return NewRepository(cfg, db), mock, db
}

func TestSaveTimesheet_ReplacesRowsRenumbered(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	endDate := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	rowA := domain.TimesheetRow{ProjectID: 100, WorkPackageID: "AA123", Hours: [domain.DaysInWeek]float64{0, 0, 8, 8, 8, 8, 0}}
	rowB := domain.TimesheetRow{ProjectID: 200, WorkPackageID: "BB456", Notes: "review"}
	ts := &domain.Timesheet{
		ID:         7,
		EmployeeID: 1,
		EndDate:    endDate,
		Rows:       []domain.TimesheetRow{rowA, rowB},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE timesheets`).
		WithArgs(endDate, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id"}).AddRow(int64(7)))
	// the previous row set goes away wholesale, however many rows it had
	mock.ExpectExec(`DELETE FROM timesheet_rows`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO timesheet_rows`).
		WithArgs(int64(7), 1, 100, "AA123", int64(hours.Pack(rowA.Hours)), "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO timesheet_rows`).
		WithArgs(int64(7), 2, 200, "BB456", int64(0), "review").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveTimesheet(ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveTimesheet_ShrinksToFewerRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	endDate := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	row := domain.TimesheetRow{ProjectID: 100, WorkPackageID: "AA123"}
	ts := &domain.Timesheet{
		ID:         7,
		EmployeeID: 1,
		EndDate:    endDate,
		Rows:       []domain.TimesheetRow{row},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE timesheets`).
		WithArgs(endDate, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id"}).AddRow(int64(7)))
	// sheet previously held 3 rows; after the save exactly 1 is written
	mock.ExpectExec(`DELETE FROM timesheet_rows`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO timesheet_rows`).
		WithArgs(int64(7), 1, 100, "AA123", int64(0), "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveTimesheet(ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveTimesheet_RollsBackOnRowInsertFailure(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	endDate := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	ts := &domain.Timesheet{
		ID:         7,
		EmployeeID: 1,
		EndDate:    endDate,
		Rows:       []domain.TimesheetRow{{ProjectID: 100, WorkPackageID: "AA123"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE timesheets`).
		WithArgs(endDate, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id"}).AddRow(int64(7)))
	mock.ExpectExec(`DELETE FROM timesheet_rows`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO timesheet_rows`).
		WithArgs(int64(7), 1, 100, "AA123", int64(0), "").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := repo.SaveTimesheet(ts); err == nil {
		t.Fatal("expected an error when a row insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveTimesheet_InsertsNewSheet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	endDate := time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	ts := &domain.Timesheet{
		EmployeeID: 1,
		EndDate:    endDate,
		Rows:       []domain.TimesheetRow{{ProjectID: 100, WorkPackageID: "AA123"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO timesheets`).
		WithArgs(int64(1), endDate).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id", "created_at"}).AddRow(int64(42), createdAt))
	mock.ExpectExec(`INSERT INTO timesheet_rows`).
		WithArgs(int64(42), 1, 100, "AA123", int64(0), "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveTimesheet(ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.ID != 42 {
		t.Fatalf("identity not assigned: got id %d, want 42", ts.ID)
	}
	if !ts.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at not captured: got %v", ts.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateCurrentWeek_InsertsPlaceholders(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	friday := period.Friday(now)
	createdAt := time.Date(2024, time.January, 10, 12, 0, 1, 0, time.UTC)
	emp := &domain.Employee{ID: 1, UserName: "jdoe"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO timesheets`).
		WithArgs(int64(1), friday).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id", "created_at"}).AddRow(int64(42), createdAt))
	for lineNo := 1; lineNo <= 5; lineNo++ {
		mock.ExpectExec(`INSERT INTO timesheet_rows`).
			WithArgs(int64(42), lineNo, 0, "", int64(0), "").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	ts, err := repo.CreateCurrentWeek(emp, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.ID != 42 {
		t.Fatalf("got id %d, want 42", ts.ID)
	}
	if !ts.EndDate.Equal(friday) {
		t.Fatalf("got end date %v, want %v", ts.EndDate, friday)
	}
	if len(ts.Rows) != 5 {
		t.Fatalf("got %d rows, want 5 placeholders", len(ts.Rows))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateCurrentWeek_DuplicateWeekRejected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	emp := &domain.Employee{ID: 1, UserName: "jdoe"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO timesheets`).
		WithArgs(int64(1), period.Friday(now)).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "timesheets_employee_id_end_date_key"`))
	mock.ExpectRollback()

	if _, err := repo.CreateCurrentWeek(emp, now); err == nil {
		t.Fatal("expected an error for a duplicate current-week sheet")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
