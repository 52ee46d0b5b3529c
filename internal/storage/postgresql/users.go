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
	queryCreateUser = `INSERT INTO users (user_id, name, email, role, is_subscribed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	queryGetUser = `SELECT user_id, name, email, role, is_subscribed, created_at, updated_at
FROM users WHERE user_id = $1`
	queryListUsers = `SELECT user_id, name, email, role, is_subscribed, created_at, updated_at
FROM users ORDER BY created_at`
	queryListUsersByEmail = `SELECT user_id, name, email, role, is_subscribed, created_at, updated_at
FROM users WHERE email = $1 ORDER BY created_at`
)

// CreateUser сохраняет нового пользователя.
// Если пользователь с таким userId уже есть, возвращает storage.ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgresql.CreateUser"

	_, err := s.Db.ExecContext(ctx, queryCreateUser,
		user.UserID,
		user.Name,
		user.Email,
		user.Role,
		user.IsSubscribed,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по userId.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.postgresql.GetUser"

	var u models.User
	err := s.Db.QueryRowContext(ctx, queryGetUser, userID).Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.IsSubscribed,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// ListUsers возвращает пользователей, при непустом email только с этим адресом.
func (s *Storage) ListUsers(ctx context.Context, email string) ([]*models.User, error) {
	const op = "storage.postgresql.ListUsers"

	var (
		rows *sql.Rows
		err  error
	)
	if email != "" {
		rows, err = s.Db.QueryContext(ctx, queryListUsersByEmail, email)
	} else {
		rows, err = s.Db.QueryContext(ctx, queryListUsers)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.UserID,
			&u.Name,
			&u.Email,
			&u.Role,
			&u.IsSubscribed,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
