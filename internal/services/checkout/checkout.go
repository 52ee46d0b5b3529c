// Package checkout создаёт платёжные намерения для покупки тарифа.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/elevator/internal/lib/money"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/services/plan"
)

// ErrInvalidPlan тариф не найден или его нельзя купить.
var ErrInvalidPlan = errors.New("invalid plan")

// Plans источник тарифов.
type Plans interface {
	Get(ctx context.Context, planID string) (*models.Plan, error)
}

// PaymentProvider создаёт платёжное намерение у платёжного провайдера.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, email, planID string) (string, error)
}

// Service оформление оплаты.
type Service struct {
	plans    Plans
	provider PaymentProvider
	log      *slog.Logger
}

// New создаёт Service.
func New(plans Plans, provider PaymentProvider, log *slog.Logger) *Service {
	return &Service{
		plans:    plans,
		provider: provider,
		log:      log,
	}
}

// CreatePaymentIntent считает сумму тарифа в минимальных единицах
// и возвращает client secret созданного платёжного намерения.
func (s *Service) CreatePaymentIntent(ctx context.Context, email, planID string) (string, error) {
	const op = "services.checkout.CreatePaymentIntent"
	log := s.log.With(sl.Op(op), slog.String("plan_id", planID))

	p, err := s.plans.Get(ctx, planID)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidPlan)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	amount, err := money.ToMinorUnits(p.Price)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidPlan, err)
	}
	if amount <= 0 {
		return "", fmt.Errorf("%s: %w: plan is free", op, ErrInvalidPlan)
	}

	secret, err := s.provider.CreatePaymentIntent(ctx, amount, email, p.PlanID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("payment intent created", slog.Int64("amount", amount))
	return secret, nil
}
