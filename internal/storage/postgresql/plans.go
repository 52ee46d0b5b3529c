package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

const queryGetPlan = `SELECT plan_id, title, period, price::float8 FROM plans WHERE plan_id = $1`

// GetPlan возвращает тарифный план по идентификатору.
func (s *Storage) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	const op = "storage.postgresql.GetPlan"

	var p models.Plan
	err := s.Db.QueryRowContext(ctx, queryGetPlan, planID).Scan(&p.PlanID, &p.Title, &p.Period, &p.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
