package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

const (
	queryCreateSubscription = `INSERT INTO subscriptions
(id, title, plan_id, period, amount, email, buying_date, expire_date, created_at, status, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	querySubscriptionByTransactionID = `SELECT id, title, plan_id, period, amount, email, buying_date, expire_date, created_at, status, transaction_id
FROM subscriptions WHERE transaction_id = $1 AND transaction_id <> 'N/A'`
	querySubscriptionByEmailAndPlan = `SELECT id, title, plan_id, period, amount, email, buying_date, expire_date, created_at, status, transaction_id
FROM subscriptions WHERE email = $1 AND plan_id = $2 LIMIT 1`
)

// CreateSubscription сохраняет подписку одной вставкой.
// Повтор transactionID или бесплатной пары (email, planId) даёт storage.ErrAlreadyExists.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.postgresql.CreateSubscription"

	amount := sql.NullInt64{Int64: sub.Amount.Minor, Valid: sub.Amount.Valid}
	_, err := s.Db.ExecContext(ctx, queryCreateSubscription,
		sub.ID,
		sub.Title,
		sub.PlanID,
		sub.Period,
		amount,
		sub.Email,
		sub.BuyingDate,
		sub.ExpireDate,
		sub.CreatedAt,
		sub.Status,
		sub.TransactionID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriptionByTransactionID ищет подписку по идентификатору платежа.
func (s *Storage) GetSubscriptionByTransactionID(ctx context.Context, transactionID string) (*models.Subscription, error) {
	const op = "storage.postgresql.GetSubscriptionByTransactionID"

	sub, err := scanSubscription(s.Db.QueryRowContext(ctx, querySubscriptionByTransactionID, transactionID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// FindSubscriptionByEmailAndPlan ищет подписку пользователя на тариф.
func (s *Storage) FindSubscriptionByEmailAndPlan(ctx context.Context, email, planID string) (*models.Subscription, error) {
	const op = "storage.postgresql.FindSubscriptionByEmailAndPlan"

	sub, err := scanSubscription(s.Db.QueryRowContext(ctx, querySubscriptionByEmailAndPlan, email, planID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func scanSubscription(row *sql.Row) (*models.Subscription, error) {
	var (
		sub    models.Subscription
		amount sql.NullInt64
	)
	err := row.Scan(
		&sub.ID,
		&sub.Title,
		&sub.PlanID,
		&sub.Period,
		&amount,
		&sub.Email,
		&sub.BuyingDate,
		&sub.ExpireDate,
		&sub.CreatedAt,
		&sub.Status,
		&sub.TransactionID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	sub.Amount = models.Amount{Minor: amount.Int64, Valid: amount.Valid}
	return &sub, nil
}
