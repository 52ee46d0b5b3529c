package paymentprovider

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78/webhook"
)

const testSecret = "whsec_test_secret"

func eventJSON(eventType, intentID string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "api_version": "2020-08-27",
  "type": %q,
  "data": {
    "object": {
      "id": %q,
      "object": "payment_intent",
      "amount": 999,
      "amount_received": 999,
      "currency": "usd",
      "metadata": {"userEmail": "ann@example.com", "planId": "0002"}
    }
  }
}`, eventType, intentID))
}

func sign(payload []byte, secret string, ts time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: ts,
	}).Header
}

func TestWebhookVerifier_ParseEvent(t *testing.T) {
	payload := eventJSON(EventPaymentIntentSucceeded, "pi_1")

	tests := []struct {
		name      string
		secret    string
		payload   []byte
		signature string
		wantErr   error
	}{
		{
			name:      "valid signature",
			secret:    testSecret,
			payload:   payload,
			signature: sign(payload, testSecret, time.Now()),
		},
		{
			name:      "wrong secret",
			secret:    testSecret,
			payload:   payload,
			signature: sign(payload, "whsec_other", time.Now()),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "missing header",
			secret:    testSecret,
			payload:   payload,
			signature: "",
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "tampered body",
			secret:    testSecret,
			payload:   eventJSON(EventPaymentIntentSucceeded, "pi_evil"),
			signature: sign(payload, testSecret, time.Now()),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:      "stale timestamp",
			secret:    testSecret,
			payload:   payload,
			signature: sign(payload, testSecret, time.Now().Add(-time.Hour)),
			wantErr:   ErrInvalidSignature,
		},
		{
			name:    "no secret accepts unsigned event",
			payload: payload,
		},
		{
			name:    "no secret rejects garbage",
			payload: []byte("not json"),
			wantErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewWebhookVerifier(tt.secret).ParseEvent(tt.payload, tt.signature)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, EventPaymentIntentSucceeded, string(event.Type))
		})
	}
}

func TestPaymentFromEvent(t *testing.T) {
	event, err := NewWebhookVerifier("").ParseEvent(eventJSON(EventPaymentIntentSucceeded, "pi_42"), "")
	require.NoError(t, err)

	p, err := PaymentFromEvent(event)
	require.NoError(t, err)
	assert.Equal(t, SucceededPayment{IntentID: "pi_42", Amount: 999, Email: "ann@example.com", PlanID: "0002"}, p)
}

func TestPaymentFromEvent_MissingID(t *testing.T) {
	event, err := NewWebhookVerifier("").ParseEvent(eventJSON(EventPaymentIntentSucceeded, ""), "")
	require.NoError(t, err)

	_, err = PaymentFromEvent(event)
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
