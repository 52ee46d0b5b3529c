package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/elevator/internal/models"
)

// EnsureIndexes создаёт индексы коллекций. Повторный вызов ничего не меняет.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	const op = "storage.mongodb.EnsureIndexes"

	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().SetName("uq_users_user_id").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_users_email"),
			},
		},
		plansCollection: {
			{
				Keys:    bson.D{{Key: "planId", Value: 1}},
				Options: options.Index().SetName("uq_plans_plan_id").SetUnique(true),
			},
		},
		subscriptionsCollection: {
			{
				// у платных подписок сумма хранится числом
				Keys: bson.D{{Key: "transactionID", Value: 1}},
				Options: options.Index().
					SetName("uq_subscriptions_transaction_id").
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "amount", Value: bson.D{{Key: "$type", Value: "long"}}}}),
			},
			{
				Keys: bson.D{{Key: "email", Value: 1}, {Key: "planId", Value: 1}},
				Options: options.Index().
					SetName("uq_subscriptions_free_email_plan").
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "transactionID", Value: models.NotApplicable}}),
			},
		},
	}

	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("%s: %s: %w", op, coll, err)
		}
	}
	return nil
}

// DefaultPlans тарифы, которые заводятся при первом запуске.
var DefaultPlans = []models.Plan{
	{PlanID: "0001", Title: "Free", Period: "7 days", Price: 0},
	{PlanID: "0002", Title: "Monthly", Period: "1 month", Price: 9.99},
	{PlanID: "0003", Title: "Quarterly", Period: "3 months", Price: 24.99},
	{PlanID: "0004", Title: "Yearly", Period: "1 year", Price: 89.99},
}

// SeedPlans добавляет отсутствующие тарифы, существующие не трогает.
func (s *Storage) SeedPlans(ctx context.Context, plans []models.Plan) error {
	const op = "storage.mongodb.SeedPlans"

	coll := s.db.Collection(plansCollection)
	for _, p := range plans {
		_, err := coll.UpdateOne(ctx,
			bson.D{{Key: "planId", Value: p.PlanID}},
			bson.D{{Key: "$setOnInsert", Value: p}},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", op, p.PlanID, err)
		}
	}
	return nil
}
