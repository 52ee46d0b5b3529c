package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

// subscriptionDoc документ коллекции subscriptions.
// amount хранится как int64 у платных подписок и строкой "N/A" у бесплатных.
type subscriptionDoc struct {
	ID            string    `bson:"_id"`
	Title         string    `bson:"title"`
	PlanID        string    `bson:"planId"`
	Period        string    `bson:"period"`
	Amount        any       `bson:"amount"`
	Email         string    `bson:"email"`
	BuyingDate    time.Time `bson:"buyingDate"`
	ExpireDate    time.Time `bson:"expireDate"`
	CreatedAt     time.Time `bson:"createdAt"`
	Status        string    `bson:"status"`
	TransactionID string    `bson:"transactionID"`
}

func toDoc(sub models.Subscription) subscriptionDoc {
	var amount any = models.NotApplicable
	if sub.Amount.Valid {
		amount = sub.Amount.Minor
	}
	return subscriptionDoc{
		ID:            sub.ID,
		Title:         sub.Title,
		PlanID:        sub.PlanID,
		Period:        sub.Period,
		Amount:        amount,
		Email:         sub.Email,
		BuyingDate:    sub.BuyingDate,
		ExpireDate:    sub.ExpireDate,
		CreatedAt:     sub.CreatedAt,
		Status:        sub.Status,
		TransactionID: sub.TransactionID,
	}
}

func (d subscriptionDoc) toModel() models.Subscription {
	var amount models.Amount
	switch v := d.Amount.(type) {
	case int64:
		amount = models.MinorAmount(v)
	case int32:
		amount = models.MinorAmount(int64(v))
	}
	return models.Subscription{
		ID:            d.ID,
		Title:         d.Title,
		PlanID:        d.PlanID,
		Period:        d.Period,
		Amount:        amount,
		Email:         d.Email,
		BuyingDate:    d.BuyingDate.UTC(),
		ExpireDate:    d.ExpireDate.UTC(),
		CreatedAt:     d.CreatedAt.UTC(),
		Status:        d.Status,
		TransactionID: d.TransactionID,
	}
}

// CreateSubscription сохраняет подписку одной вставкой.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.mongodb.CreateSubscription"

	if _, err := s.db.Collection(subscriptionsCollection).InsertOne(ctx, toDoc(sub)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriptionByTransactionID ищет подписку по идентификатору платежа.
// Бесплатные записи с заглушкой "N/A" не находятся.
func (s *Storage) GetSubscriptionByTransactionID(ctx context.Context, transactionID string) (*models.Subscription, error) {
	const op = "storage.mongodb.GetSubscriptionByTransactionID"

	sub, err := s.findOne(ctx, bson.D{{Key: "transactionID", Value: bson.D{
		{Key: "$eq", Value: transactionID},
		{Key: "$ne", Value: models.NotApplicable},
	}}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// FindSubscriptionByEmailAndPlan ищет подписку пользователя на тариф.
func (s *Storage) FindSubscriptionByEmailAndPlan(ctx context.Context, email, planID string) (*models.Subscription, error) {
	const op = "storage.mongodb.FindSubscriptionByEmailAndPlan"

	sub, err := s.findOne(ctx, bson.D{{Key: "email", Value: email}, {Key: "planId", Value: planID}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func (s *Storage) findOne(ctx context.Context, filter bson.D) (*models.Subscription, error) {
	var doc subscriptionDoc
	err := s.db.Collection(subscriptionsCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	sub := doc.toModel()
	return &sub, nil
}
