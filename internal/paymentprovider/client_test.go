package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v78"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewClientWithBackends("sk_test_123", "usd", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "999", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		assert.Equal(t, "ann@example.com", r.PostForm.Get("metadata[userEmail]"))
		assert.Equal(t, "0002", r.PostForm.Get("metadata[planId]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":999,"client_secret":"pi_1_secret_abc"}`))
	})

	secret, err := c.CreatePaymentIntent(context.Background(), 999, "ann@example.com", "0002")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", secret)
}

func TestClient_CreatePaymentIntent_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Amount must be at least 50 cents"}}`))
	})

	_, err := c.CreatePaymentIntent(context.Background(), 10, "ann@example.com", "0002")
	require.Error(t, err)

	var stripeErr *stripe.Error
	assert.ErrorAs(t, err, &stripeErr)
}
