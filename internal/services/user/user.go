// Package user содержит регистрацию и поиск пользователей.
package user

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

// Repository хранилище пользователей.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, email string) ([]*models.User, error)
}

// Service бизнес-логика пользователей.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Register создаёт пользователя, если userId ещё не занят.
// Второе значение true, если пользователь создан; при false возвращается уже сохранённый.
func (s *Service) Register(ctx context.Context, u models.User) (*models.User, bool, error) {
	const op = "services.user.Register"
	log := s.log.With(sl.Op(op), slog.String("user_id", u.UserID))

	existing, err := s.repo.GetUser(ctx, u.UserID)
	if err == nil {
		log.Info("user already exists")
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if u.Role == "" {
		u.Role = models.DefaultRole
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		// параллельная регистрация успела раньше
		existing, getErr := s.repo.GetUser(ctx, u.UserID)
		if getErr != nil {
			return nil, false, fmt.Errorf("%s: %w", op, getErr)
		}
		return existing, false, nil
	}

	log.Info("user created")
	return &u, true, nil
}

// List возвращает пользователей, отфильтрованных по email, если он задан.
func (s *Service) List(ctx context.Context, email string) ([]*models.User, error) {
	const op = "services.user.List"

	users, err := s.repo.ListUsers(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
