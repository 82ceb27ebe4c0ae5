package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT emp_number, user_name, name, email, role, password_hash, created_at
		FROM employees WHERE employee_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{
		ID: id,
	}

	dst := []any{&emp.EmpNumber, &emp.UserName, &emp.Name, &emp.Email, &emp.Role, &emp.PasswordHash, &emp.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, fmt.Errorf("get employee by id: %w", err)
	}

	return emp, nil
}

// GetEmployeeByUserName looks an employee up by login name. The lookup is
// case-insensitive, matching the uniqueness rule on user names.
func (r *Repository) GetEmployeeByUserName(userName string) (*domain.Employee, error) {
	query := `
		SELECT employee_id, emp_number, user_name, name, email, role, password_hash, created_at
		FROM employees WHERE LOWER(user_name) = LOWER($1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{}
	dst := []any{&emp.ID, &emp.EmpNumber, &emp.UserName, &emp.Name, &emp.Email, &emp.Role, &emp.PasswordHash, &emp.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userName).Scan(dst...); err != nil {
		return nil, fmt.Errorf("get employee by user name: %w", err)
	}

	return emp, nil
}

// GetEmployeeByEmpNumber looks an employee up by payroll number.
func (r *Repository) GetEmployeeByEmpNumber(empNumber int) (*domain.Employee, error) {
	query := `
		SELECT employee_id, emp_number, user_name, name, email, role, password_hash, created_at
		FROM employees WHERE emp_number = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{}
	dst := []any{&emp.ID, &emp.EmpNumber, &emp.UserName, &emp.Name, &emp.Email, &emp.Role, &emp.PasswordHash, &emp.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, empNumber).Scan(dst...); err != nil {
		return nil, fmt.Errorf("get employee by emp number: %w", err)
	}

	return emp, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT employee_id, emp_number, user_name, name, email, role, password_hash, created_at
		FROM employees ORDER BY emp_number
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp := &domain.Employee{}
		dst := []any{&emp.ID, &emp.EmpNumber, &emp.UserName, &emp.Name, &emp.Email, &emp.Role, &emp.PasswordHash, &emp.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, fmt.Errorf("get all employees: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all employees: %w", err)
	}

	return employees, nil
}

// CreateEmployee inserts a new employee. A zero EmpNumber is assigned the
// next free number inside the same transaction, so concurrent creates
// cannot hand out the same one twice without tripping the unique index.
func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if emp.EmpNumber == 0 {
		next := `SELECT COALESCE(MAX(emp_number), 0) + 1 FROM employees`
		if err := tx.QueryRowContext(ctx, next).Scan(&emp.EmpNumber); err != nil {
			return fmt.Errorf("create employee: %w", err)
		}
	}

	query := `
		INSERT INTO employees (emp_number, user_name, name, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING employee_id, created_at
	`

	args := []any{emp.EmpNumber, emp.UserName, emp.Name, emp.Email, emp.Role, emp.PasswordHash}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&emp.ID, &emp.CreatedAt); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

func (r *Repository) UpdateEmployee(emp *domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, email = $2, role = $3
		WHERE employee_id = $4
		RETURNING emp_number, user_name, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{emp.Name, emp.Email, emp.Role, emp.ID}
	dst := []any{&emp.EmpNumber, &emp.UserName, &emp.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}

	return nil
}

func (r *Repository) UpdateEmployeePassword(id int64, passwordHash string) error {
	query := `
		UPDATE employees SET password_hash = $1 WHERE employee_id = $2
		RETURNING employee_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var updated int64
	if err := r.dbpool.QueryRowContext(ctx, query, passwordHash, id).Scan(&updated); err != nil {
		return fmt.Errorf("update employee password: %w", err)
	}

	return nil
}

// NextEmployeeNumber returns the next free payroll number, used to prefill
// the add-employee form. CreateEmployee recomputes it inside its own
// transaction, so this value is advisory only.
func (r *Repository) NextEmployeeNumber() (int, error) {
	query := `SELECT COALESCE(MAX(emp_number), 0) + 1 FROM employees`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var next int
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&next); err != nil {
		return 0, fmt.Errorf("next employee number: %w", err)
	}

	return next, nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE employee_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	return nil
}
