package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/utils"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)
	h.successResponse(w, r, "employee", emp)
}

func (h *Handler) GetEmployeeByEmpNumber(w http.ResponseWriter, r *http.Request) {
	empNumber, err := strconv.Atoi(chi.URLParam(r, "empNumber"))
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid employee number")
		return
	}

	emp, err := h.repository.GetEmployeeByEmpNumber(empNumber)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee", emp)
}

// GetNextEmployeeNumber prefills the add-employee form. The number is not
// reserved; creation recomputes it transactionally.
func (h *Handler) GetNextEmployeeNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.repository.NextEmployeeNumber()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "next employee number", map[string]int{"empNumber": next})
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName  string `json:"userName" validate:"required"`
		Name      string `json:"name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role" validate:"required,oneof=USER ADMIN"`
		EmpNumber int    `json:"empNumber" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// new accounts start with a generated password, delivered by email
	password := utils.GenerateRandomPassword(h.config.NewEmployee.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	emp := &domain.Employee{
		EmpNumber:    req.EmpNumber,
		UserName:     req.UserName,
		Name:         req.Name,
		Email:        req.Email,
		Role:         domain.Role(req.Role),
		PasswordHash: string(hashedPassword),
	}

	if err := h.repository.CreateEmployee(emp); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "employees_user_name_key":
				h.errorResponse(w, r, http.StatusConflict, "username already exists")
			case "employees_emp_number_key":
				h.errorResponse(w, r, http.StatusConflict, "employee number already exists")
			case "employees_email_key":
				h.errorResponse(w, r, http.StatusConflict, "email already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_employee",
		To:   emp.Email,
		Data: domain.CreateEmployeeMailData{
			Name:     emp.Name,
			UserName: emp.UserName,
			Password: password,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "employee created", emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"omitempty,email"`
		Role  string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != "" {
		emp.Name = req.Name
	}
	if req.Email != "" {
		emp.Email = req.Email
	}
	if req.Role != "" {
		emp.Role = domain.Role(req.Role)
	}

	if err := h.repository.UpdateEmployee(emp); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "employees_email_key":
			h.errorResponse(w, r, http.StatusConflict, "email already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee updated", emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(emp.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee deleted", nil)
}

func (h *Handler) UpdateEmployeePassword(w http.ResponseWriter, r *http.Request) {
	emp := r.Context().Value(EmployeeInfoCtx).(*domain.Employee)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateEmployeePassword(emp.ID, string(hashedPassword)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
