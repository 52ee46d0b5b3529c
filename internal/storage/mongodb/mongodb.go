// Package mongodb реализует то же хранилище, что и postgresql, поверх MongoDB.
// Коллекции users, plans и subscriptions. Уникальность обеспечивается частичными уникальными индексами.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/magabrotheeeer/elevator/internal/config"
)

const (
	usersCollection         = "users"
	plansCollection         = "plans"
	subscriptionsCollection = "subscriptions"
)

// ErrFailedToConnect возвращается, когда все попытки подключения исчерпаны.
var ErrFailedToConnect = errors.New("failed to connect to mongo")

// Storage хранилище на MongoDB.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB с повторами и проверяет соединение через Ping.
func New(ctx context.Context, cfg config.Storage) (*Storage, error) {
	const op = "storage.mongodb.New"

	attempts := max(cfg.MongoRetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.MongoURI).
				SetConnectTimeout(cfg.MongoConnectTimeout).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return &Storage{client: client, db: client.Database(cfg.MongoDatabase)}, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			case <-time.After(cfg.MongoRetryInterval):
			}
		}
	}
	return nil, fmt.Errorf("%s: %w: %w", op, ErrFailedToConnect, lastErr)
}

// Ping проверяет соединение с сервером.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.mongodb.Ping"
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close разрывает соединение.
func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
