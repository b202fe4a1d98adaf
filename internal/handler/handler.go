package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shift-planner/backend/internal/config"
	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/repository"
	"github.com/shift-planner/backend/internal/scheduling"
)

type Handler struct {
	validate              *validator.Validate
	config                *config.Config
	repository            *repository.Repository
	translator            ut.Translator
	mailChannel           *amqp.Channel
	redisClient           *redis.Client
	availabilityValidator *scheduling.AvailabilityValidator
	shiftValidator        *scheduling.ShiftValidator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	availabilityValidator, shiftValidator := scheduling.NewValidators(repo, time.Duration(cfg.Scheduling.MinAvailabilityHours)*time.Hour)

	return &Handler{
		validate:              validate,
		config:                cfg,
		repository:            repo,
		translator:            trans,
		mailChannel:           mailCh,
		redisClient:           rdb,
		availabilityValidator: availabilityValidator,
		shiftValidator:        shiftValidator,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Get("/employees", h.GetAllEmployees)
			r.Post("/employees", h.CreateEmployee)
		})

		r.Route("/availabilities", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllAvailabilities)
			r.Post("/", h.CreateAvailability)
			r.Get("/my", h.GetMyAvailabilities)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.availabilityRecord)
				r.Patch("/", h.UpdateAvailability)
				r.Delete("/", h.DeleteAvailability)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/my", h.GetMyShifts)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Get("/", h.GetAllShifts)
				r.Post("/", h.CreateShift)
				r.Delete("/{id}", h.DeleteShift)
			})
		})
	})
}
