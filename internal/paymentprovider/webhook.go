package paymentprovider

import (
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

// EventPaymentIntentSucceeded единственный тип события, по которому оформляется подписка.
const EventPaymentIntentSucceeded = "payment_intent.succeeded"

var (
	// ErrInvalidSignature подпись события не прошла проверку.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedEvent тело события не разбирается.
	ErrMalformedEvent = errors.New("malformed webhook event")
)

// WebhookVerifier проверяет подпись событий Stripe.
// С пустым секретом события принимаются без проверки.
type WebhookVerifier struct {
	secret string
}

// NewWebhookVerifier создаёт WebhookVerifier.
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// ParseEvent проверяет заголовок Stripe-Signature и разбирает событие.
func (v *WebhookVerifier) ParseEvent(payload []byte, signature string) (stripe.Event, error) {
	const op = "paymentprovider.ParseEvent"

	if v.secret == "" {
		var event stripe.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return stripe.Event{}, fmt.Errorf("%s: %w: %w", op, ErrMalformedEvent, err)
		}
		if event.Type == "" {
			return stripe.Event{}, fmt.Errorf("%s: %w: missing type", op, ErrMalformedEvent)
		}
		return event, nil
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidSignature, err)
	}
	return event, nil
}

// SucceededPayment данные оплаченного платёжного намерения.
type SucceededPayment struct {
	IntentID string
	Amount   int64
	Email    string
	PlanID   string
}

// PaymentFromEvent достаёт платёжное намерение из события.
func PaymentFromEvent(event stripe.Event) (SucceededPayment, error) {
	const op = "paymentprovider.PaymentFromEvent"

	if event.Data == nil || len(event.Data.Raw) == 0 {
		return SucceededPayment{}, fmt.Errorf("%s: %w: empty data", op, ErrMalformedEvent)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return SucceededPayment{}, fmt.Errorf("%s: %w: %w", op, ErrMalformedEvent, err)
	}
	if pi.ID == "" {
		return SucceededPayment{}, fmt.Errorf("%s: %w: missing payment intent id", op, ErrMalformedEvent)
	}

	amount := pi.AmountReceived
	if amount == 0 {
		amount = pi.Amount
	}
	return SucceededPayment{
		IntentID: pi.ID,
		Amount:   amount,
		Email:    pi.Metadata[MetadataUserEmail],
		PlanID:   pi.Metadata[MetadataPlanID],
	}, nil
}
