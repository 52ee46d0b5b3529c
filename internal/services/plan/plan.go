// Package plan предоставляет чтение тарифных планов с кэшированием в Redis.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

// ErrNotFound тарифа с таким идентификатором нет.
var ErrNotFound = errors.New("plan not found")

// Repository хранилище тарифов.
type Repository interface {
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service читает тарифы. Ошибки кэша не прерывают запрос, тариф читается из хранилища.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создаёт Service.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func cacheKey(planID string) string {
	return "plan:" + planID
}

// Get возвращает тариф по идентификатору.
func (s *Service) Get(ctx context.Context, planID string) (*models.Plan, error) {
	const op = "services.plan.Get"
	log := s.log.With(sl.Op(op), slog.String("plan_id", planID))

	var cached models.Plan
	found, err := s.cache.Get(ctx, cacheKey(planID), &cached)
	if err != nil {
		log.Warn("plan cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cacheKey(planID), p, s.ttl); err != nil {
		log.Warn("plan cache write failed", sl.Err(err))
	}
	return p, nil
}
