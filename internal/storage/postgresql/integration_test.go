package postgresql

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/elevator/internal/migrations"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

func setupPostgres(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("elevator"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.Db, path, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return s
}

func newSubscription(email, planID, transactionID string, amount models.Amount) models.Subscription {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return models.Subscription{
		ID:            uuid.NewString(),
		Title:         "Plan",
		PlanID:        planID,
		Period:        "1 month",
		Amount:        amount,
		Email:         email,
		BuyingDate:    now,
		ExpireDate:    now.AddDate(0, 1, 0),
		CreatedAt:     now,
		Status:        models.StatusActive,
		TransactionID: transactionID,
	}
}

func TestStorage_Integration(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("seeded plan", func(t *testing.T) {
		p, err := s.GetPlan(ctx, "0002")
		require.NoError(t, err)
		assert.Equal(t, "1 month", p.Period)
		assert.InDelta(t, 9.99, p.Price, 0.0001)
	})

	t.Run("user uniqueness", func(t *testing.T) {
		now := time.Now().UTC()
		u := models.User{UserID: "u-int", Name: "Ann", Email: "ann@int.test", Role: "user", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, s.CreateUser(ctx, u))
		assert.ErrorIs(t, s.CreateUser(ctx, u), storage.ErrAlreadyExists)

		users, err := s.ListUsers(ctx, "ann@int.test")
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("paid transaction is unique", func(t *testing.T) {
		first := newSubscription("bob@int.test", "0002", "pi_int_1", models.MinorAmount(999))
		require.NoError(t, s.CreateSubscription(ctx, first))

		second := newSubscription("bob@int.test", "0002", "pi_int_1", models.MinorAmount(999))
		assert.ErrorIs(t, s.CreateSubscription(ctx, second), storage.ErrAlreadyExists)

		got, err := s.GetSubscriptionByTransactionID(ctx, "pi_int_1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("free email and plan are unique", func(t *testing.T) {
		free := newSubscription("eve@int.test", "0001", models.NotApplicable, models.Amount{})
		require.NoError(t, s.CreateSubscription(ctx, free))

		again := newSubscription("eve@int.test", "0001", models.NotApplicable, models.Amount{})
		assert.ErrorIs(t, s.CreateSubscription(ctx, again), storage.ErrAlreadyExists)

		got, err := s.FindSubscriptionByEmailAndPlan(ctx, "eve@int.test", "0001")
		require.NoError(t, err)
		assert.False(t, got.Amount.Valid)

		_, err = s.GetSubscriptionByTransactionID(ctx, models.NotApplicable)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := s.GetSubscriptionByTransactionID(ctx, "pi_none")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

