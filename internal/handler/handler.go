package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rsu-logistica/shift-board/backend/internal/config"
	"github.com/rsu-logistica/shift-board/backend/internal/domain"
)

// documentRepository 由 *repository.Repository 实现
type documentRepository interface {
	GetDocument(key string) (*domain.Document, error)
	PutDocument(doc *domain.Document) error
	GetDeviceByID(id string) (*domain.Device, error)
}

// publisher 由 *amqp.Channel 实现
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  documentRepository
	translator  ut.Translator
	mailChannel publisher

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo documentRepository, mailCh publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Post("/auth/token", h.IssueDeviceToken)

	// 以下 API 需要设备令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/staff", h.GetStaff)
		r.Post("/staff", h.PutStaff)

		r.Get("/master", h.GetMaster)
		r.Post("/master", h.PutMaster)

		r.Route("/day/{date}", func(r chi.Router) {
			r.Use(h.dayDate)
			r.Get("/", h.GetDay)
			r.Post("/", h.PutDay)
			r.Get("/report", h.GetDayReport)
		})
	})
}
