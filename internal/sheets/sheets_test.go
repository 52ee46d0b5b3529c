package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/elevator/internal/models"
)

func TestClient_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sub := models.Subscription{
		ID:            "id-1",
		Title:         "Free",
		PlanID:        "0001",
		Period:        "7 days",
		Email:         "ann@example.com",
		Status:        models.StatusActive,
		TransactionID: models.NotApplicable,
	}

	err := New(srv.URL, srv.Client()).Send(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "N/A", got["amount"])
	assert.Equal(t, "N/A", got["transactionID"])
	assert.Equal(t, "0001", got["planId"])
	assert.Equal(t, "active", got["status"])
}

func TestClient_Send_Errors(t *testing.T) {
	t.Run("non 2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := New(srv.URL, nil).Send(context.Background(), models.Subscription{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := New(srv.URL, nil).Send(ctx, models.Subscription{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
