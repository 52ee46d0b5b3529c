// Package free реализует HTTP-обработчик активации бесплатного тарифа.
//
// На один email допускается одна бесплатная подписка; повторная активация отклоняется с 409.
// Созданная запись уходит во внешнюю таблицу в фоне и не задерживает ответ.
package free

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/elevator/internal/http/response"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/metrics"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/services/subscription"
)

// Request тело запроса на активацию. Даты принимаются в RFC 3339 или YYYY-MM-DD.
type Request struct {
	Title      string `json:"title" validate:"required"`
	PlanID     string `json:"planId" validate:"required"`
	Period     string `json:"period" validate:"required"`
	Email      string `json:"email" validate:"required"`
	BuyingDate string `json:"buyingDate" validate:"required"`
	ExpireDate string `json:"expireDate" validate:"required"`
}

// Service описывает бизнес-логику активации.
type Service interface {
	ActivateFree(ctx context.Context, req subscription.FreeRequest) (*models.Subscription, error)
}

// Handler обрабатывает POST /free.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", s)
}

// ServeHTTP godoc
// @Summary Активировать бесплатный тариф
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body Request true "Данные подписки"
// @Success 200 {object} response.Response{data=models.Subscription} "Тариф активирован"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Бесплатный тариф уже активен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /free [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.free"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		metrics.FreeActivations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		metrics.FreeActivations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	buying, err := parseDate(req.BuyingDate)
	if err != nil {
		h.badDate(w, r, log, "buyingDate", err)
		return
	}
	expire, err := parseDate(req.ExpireDate)
	if err != nil {
		h.badDate(w, r, log, "expireDate", err)
		return
	}

	sub, err := h.service.ActivateFree(r.Context(), subscription.FreeRequest{
		Title:      req.Title,
		PlanID:     req.PlanID,
		Period:     req.Period,
		Email:      req.Email,
		BuyingDate: buying,
		ExpireDate: expire,
	})
	if err != nil {
		if errors.Is(err, subscription.ErrAlreadyActive) {
			log.Info("free plan already active", slog.String("email", req.Email))
			metrics.FreeActivations.WithLabelValues(metrics.OutcomeConflict).Inc()
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("You already have an active free plan."))
			return
		}
		log.Error("failed to activate free plan", sl.Err(err))
		metrics.FreeActivations.WithLabelValues(metrics.OutcomeFailure).Inc()
		report.Error(r.Context(), err, report.With("email", req.Email))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	metrics.FreeActivations.WithLabelValues(metrics.OutcomeCreated).Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OK("Free plan activated successfully", sub))
}

func (h *Handler) badDate(w http.ResponseWriter, r *http.Request, log *slog.Logger, field string, err error) {
	log.Warn("invalid date", slog.String("field", field), sl.Err(err))
	metrics.FreeActivations.WithLabelValues(metrics.OutcomeInvalid).Inc()
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(fmt.Sprintf("field %s must be a date in RFC 3339 or YYYY-MM-DD format", field)))
}
