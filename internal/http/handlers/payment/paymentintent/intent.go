// Package paymentintent обрабатывает создание платёжного намерения для оплаты тарифа.
package paymentintent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/elevator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elevator/internal/http/response"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/services/checkout"
)

// Request представляет запрос на создание платёжного намерения.
type Request struct {
	PlanID string `json:"planId" validate:"required"`
}

// Response client secret для подтверждения платежа на клиенте.
type Response struct {
	ClientSecret string `json:"clientSecret"`
}

// Service определяет интерфейс оформления оплаты.
type Service interface {
	CreatePaymentIntent(ctx context.Context, email, planID string) (string, error)
}

// Handler обрабатывает запросы на создание платёжного намерения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платёжное намерение
// @Description Считает сумму тарифа и создаёт PaymentIntent в Stripe с метаданными userEmail и planId
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Тариф"
// @Success 200 {object} Response "client secret"
// @Failure 400 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /api/create-payment-intent [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intent"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Warn("email not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	secret, err := h.service.CreatePaymentIntent(r.Context(), email, req.PlanID)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidPlan) {
			log.Info("invalid plan", slog.String("plan_id", req.PlanID), sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid plan"))
			return
		}
		log.Error("failed to create payment intent", sl.Err(err))
		report.Error(r.Context(), err, report.With("plan_id", req.PlanID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("payment intent created", slog.String("plan_id", req.PlanID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{ClientSecret: secret})
}
