// Package paymentwebhook принимает события Stripe и оформляет подписки по оплаченным платёжным намерениям.
//
// Коды ответа рассчитаны на политику повторов Stripe: 400 при неверной подписи или теле,
// 500 при временной ошибке (событие будет доставлено снова), 200 во всех остальных случаях,
// включая необратимые ошибки оформления, которые повтор не исправит.
package paymentwebhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	stripe "github.com/stripe/stripe-go/v78"

	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/metrics"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/paymentprovider"
	"github.com/magabrotheeeer/elevator/internal/services/subscription"
)

// MaxBodyBytes предел размера тела события.
const MaxBodyBytes = 65536

// SignatureHeader заголовок с подписью события.
const SignatureHeader = "Stripe-Signature"

// Verifier проверяет подпись и разбирает событие.
type Verifier interface {
	ParseEvent(payload []byte, signature string) (stripe.Event, error)
}

// Service оформляет подписку по платежу.
type Service interface {
	Fulfill(ctx context.Context, p subscription.Payment) (subscription.Outcome, *models.Subscription, error)
}

// Handler обрабатывает POST /webhook.
type Handler struct {
	log      *slog.Logger
	verifier Verifier
	service  Service
}

// New создает Handler.
func New(log *slog.Logger, verifier Verifier, service Service) *Handler {
	return &Handler{
		log:      log,
		verifier: verifier,
		service:  service,
	}
}

type ack struct {
	Received bool `json:"received"`
}

// ServeHTTP godoc
// @Summary Webhook Stripe
// @Description Проверяет подпись события и по payment_intent.succeeded создаёт подписку. Повторная доставка безопасна.
// @Tags Payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string false "Подпись события"
// @Success 200 {object} ack
// @Failure 400 "Неверная подпись или тело"
// @Failure 500 "Временная ошибка, Stripe повторит доставку"
// @Router /webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		log.Warn("failed to read webhook body", sl.Err(err))
		metrics.WebhookEvents.WithLabelValues("", metrics.OutcomeInvalid).Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := h.verifier.ParseEvent(body, r.Header.Get(SignatureHeader))
	if err != nil {
		log.Warn("rejected webhook event", sl.Err(err))
		metrics.WebhookEvents.WithLabelValues("", metrics.OutcomeInvalid).Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	eventType := string(event.Type)
	log = log.With(slog.String("event_id", event.ID), slog.String("event_type", eventType))

	if eventType != paymentprovider.EventPaymentIntentSucceeded {
		log.Info("ignored webhook event")
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeIgnored).Inc()
		h.ack(w, r)
		return
	}

	payment, err := paymentprovider.PaymentFromEvent(event)
	if err != nil {
		h.permanent(r.Context(), log, eventType, event.ID, err)
		h.ack(w, r)
		return
	}
	log = log.With(slog.String("transaction_id", payment.IntentID))

	outcome, sub, err := h.service.Fulfill(r.Context(), subscription.Payment{
		TransactionID: payment.IntentID,
		Amount:        payment.Amount,
		Email:         payment.Email,
		PlanID:        payment.PlanID,
	})
	if err != nil {
		if errors.Is(err, subscription.ErrPermanent) {
			h.permanent(r.Context(), log, eventType, event.ID, err)
			h.ack(w, r)
			return
		}
		log.Error("transient fulfillment failure", sl.Err(err))
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeTransientFailure).Inc()
		report.Error(r.Context(), err, report.With("event_id", event.ID), report.With("transaction_id", payment.IntentID))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch outcome {
	case subscription.OutcomeCreated:
		log.Info("subscription fulfilled", slog.String("id", sub.ID))
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeCreated).Inc()
	case subscription.OutcomeDuplicate:
		log.Info("duplicate webhook delivery")
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeDuplicate).Inc()
	}
	h.ack(w, r)
}

func (h *Handler) permanent(ctx context.Context, log *slog.Logger, eventType, eventID string, err error) {
	log.Error("permanent fulfillment failure", sl.Err(err))
	metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomePermanentFailure).Inc()
	report.Error(ctx, err, report.With("event_id", eventID))
}

func (h *Handler) ack(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ack{Received: true})
}
