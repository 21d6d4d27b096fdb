package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/skrm-sewa/duty-tracker/backend/internal/config"
	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
	"github.com/skrm-sewa/duty-tracker/backend/internal/feed"
	"github.com/skrm-sewa/duty-tracker/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	store       *dutycore.Store
	bands       []dutycore.Band
	feed        *feed.Feed
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, store *dutycore.Store, bands []dutycore.Band, fd *feed.Feed, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
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
		translator:  trans,
		store:       store,
		bands:       bands,
		feed:        fd,
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

	// everything below requires a logged-in incharge
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/incharges", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleSuperAdmin})).Post("/", h.CreateIncharge)
			r.With(h.RequiredRole([]domain.Role{domain.RoleSuperAdmin})).Get("/", h.GetAllIncharges)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleSuperAdmin}))
				r.Use(h.inchargeInfo)
				r.Get("/", h.GetIncharge)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateIncharge)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteIncharge)
				r.Patch("/password", h.UpdateInchargePassword)
			})
		})

		r.Route("/sewadars", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetSewadars)
			r.Post("/", h.CreateCustomSewadar)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.With(h.myInfo).Post("/", h.CreateSession)
			r.Get("/", h.GetSessions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.session)
				r.Get("/", h.GetSession)
				r.Get("/records", h.GetSessionRecords)
				r.Get("/report", h.GetSessionReport)
				r.Get("/vehicles", h.GetSessionVehicleRecords)
				r.Get("/issues", h.GetSessionIssues)

				// mutations are scoped to the session's group
				r.Group(func(r chi.Router) {
					r.Use(h.myInfo)
					r.Use(h.requireSessionAccess)
					r.Patch("/", h.UpdateSession)
					r.With(h.RequiredRole([]domain.Role{domain.RoleSuperAdmin})).Delete("/", h.DeleteSession)
					r.Post("/complete", h.CompleteSession)
					r.Post("/wipe", h.WipeSession)
					r.Post("/records", h.CreateRecord)
					r.Patch("/records/{recordID}", h.UpdateRecord)
					r.Delete("/records/{recordID}", h.DeleteRecord)
					r.Post("/vehicles", h.CreateVehicleRecord)
					r.Post("/issues", h.CreateIssue)
				})
			})
		})
	})
}

// publishMail serializes a mail message and hands it to the durable queue;
// the mail worker picks it up from there.
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"mail_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
