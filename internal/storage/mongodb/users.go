package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

// CreateUser сохраняет нового пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.mongodb.CreateUser"

	if _, err := s.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по userId.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.mongodb.GetUser"

	var u models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "userId", Value: userID}}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// ListUsers возвращает пользователей, при непустом email только с этим адресом.
func (s *Storage) ListUsers(ctx context.Context, email string) ([]*models.User, error) {
	const op = "storage.mongodb.ListUsers"

	filter := bson.D{}
	if email != "" {
		filter = bson.D{{Key: "email", Value: email}}
	}
	cur, err := s.db.Collection(usersCollection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res []*models.User
	if err := cur.All(ctx, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
