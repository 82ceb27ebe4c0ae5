package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/auth"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/config"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
	"github.com/bcit-infosys/timesheet-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	tokens      *auth.TokenStore
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, tokens *auth.TokenStore, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		tokens:      tokens,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session token
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/currentuser", func(r chi.Router) {
			r.Get("/", h.GetCurrentUser)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", h.ListTimesheets)
			r.Post("/", h.CreateCurrentWeekTimesheet)
			r.Get("/current", h.GetCurrentTimesheet)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timesheetInfo)
				r.Get("/", h.GetTimesheet)
				r.Put("/", h.UpdateTimesheet)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Get("/", h.GetAllEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/next-number", h.GetNextEmployeeNumber)
			r.Get("/number/{empNumber}", h.GetEmployeeByEmpNumber)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteEmployee)
				r.Patch("/password", h.UpdateEmployeePassword)
			})
		})
	})
}
