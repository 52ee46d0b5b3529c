// Package subscription создаёт подписки: активацию бесплатного тарифа
// и оформление платной подписки по подтверждённому платежу.
//
// Повторная обработка одного и того же платежа безопасна: уникальность
// transactionID проверяется заранее и гарантируется индексом хранилища.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/elevator/internal/lib/period"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/services/plan"
	"github.com/magabrotheeeer/elevator/internal/storage"
)

var (
	// ErrAlreadyActive у пользователя уже есть бесплатная подписка.
	ErrAlreadyActive = errors.New("free plan already active")
	// ErrPermanent платёж невозможно оформить, повторная доставка не поможет.
	ErrPermanent = errors.New("permanent fulfillment failure")
)

// Repository хранилище подписок.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) error
	GetSubscriptionByTransactionID(ctx context.Context, transactionID string) (*models.Subscription, error)
	FindSubscriptionByEmailAndPlan(ctx context.Context, email, planID string) (*models.Subscription, error)
}

// Plans источник тарифов.
type Plans interface {
	Get(ctx context.Context, planID string) (*models.Plan, error)
}

// Forwarder отправляет созданную подписку во внешнюю таблицу, не блокируя вызывающего.
type Forwarder interface {
	Forward(sub models.Subscription)
}

// Service бизнес-логика подписок.
type Service struct {
	repo       Repository
	plans      Plans
	forwarder  Forwarder
	freePlanID string
	log        *slog.Logger
	now        func() time.Time
	newID      func() string
}

// New создаёт Service. freePlanID идентификатор бесплатного тарифа, по которому ищется повторная активация.
func New(repo Repository, plans Plans, forwarder Forwarder, freePlanID string, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		plans:      plans,
		forwarder:  forwarder,
		freePlanID: freePlanID,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// FreeRequest данные для активации бесплатного тарифа.
type FreeRequest struct {
	Title      string
	PlanID     string
	Period     string
	Email      string
	BuyingDate time.Time
	ExpireDate time.Time
}

// ActivateFree сохраняет бесплатную подписку, если у email её ещё нет.
func (s *Service) ActivateFree(ctx context.Context, req FreeRequest) (*models.Subscription, error) {
	const op = "services.subscription.ActivateFree"
	log := s.log.With(sl.Op(op), slog.String("email", req.Email))

	_, err := s.repo.FindSubscriptionByEmailAndPlan(ctx, req.Email, s.freePlanID)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyActive)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sub := models.Subscription{
		ID:            s.newID(),
		Title:         req.Title,
		PlanID:        req.PlanID,
		Period:        req.Period,
		Amount:        models.Amount{},
		Email:         req.Email,
		BuyingDate:    req.BuyingDate,
		ExpireDate:    req.ExpireDate,
		CreatedAt:     s.now(),
		Status:        models.StatusActive,
		TransactionID: models.NotApplicable,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyActive)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("free plan activated", slog.String("id", sub.ID))
	s.forwarder.Forward(sub)
	return &sub, nil
}

// Payment подтверждённый платёж.
type Payment struct {
	TransactionID string
	Amount        int64
	Email         string
	PlanID        string
}

// Outcome результат обработки платежа.
type Outcome int

const (
	// OutcomeCreated подписка создана.
	OutcomeCreated Outcome = iota
	// OutcomeDuplicate платёж уже был обработан.
	OutcomeDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Fulfill оформляет подписку по платежу.
//
// Ошибки, обёрнутые в ErrPermanent, означают, что платёж оформить нельзя в принципе.
// Остальные ошибки временные, повторная доставка события может пройти успешно.
func (s *Service) Fulfill(ctx context.Context, p Payment) (Outcome, *models.Subscription, error) {
	const op = "services.subscription.Fulfill"
	log := s.log.With(sl.Op(op), slog.String("transaction_id", p.TransactionID))

	if p.TransactionID == "" || p.TransactionID == models.NotApplicable {
		return 0, nil, fmt.Errorf("%s: %w: invalid transaction id %q", op, ErrPermanent, p.TransactionID)
	}

	existing, err := s.repo.GetSubscriptionByTransactionID(ctx, p.TransactionID)
	if err == nil {
		log.Info("payment already fulfilled", slog.String("id", existing.ID))
		return OutcomeDuplicate, existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.Email == "" || p.PlanID == "" {
		return 0, nil, fmt.Errorf("%s: %w: metadata must contain userEmail and planId", op, ErrPermanent)
	}

	pl, err := s.plans.Get(ctx, p.PlanID)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			return 0, nil, fmt.Errorf("%s: %w: %w", op, ErrPermanent, err)
		}
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	expire, err := period.ExpireAt(now, pl.Period)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w: %w", op, ErrPermanent, err)
	}

	sub := models.Subscription{
		ID:            s.newID(),
		Title:         pl.Title,
		PlanID:        pl.PlanID,
		Period:        pl.Period,
		Amount:        models.MinorAmount(p.Amount),
		Email:         p.Email,
		BuyingDate:    now,
		ExpireDate:    expire,
		CreatedAt:     now,
		Status:        models.StatusActive,
		TransactionID: p.TransactionID,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Info("concurrent delivery already fulfilled payment")
			return OutcomeDuplicate, nil, nil
		}
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("subscription created", slog.String("id", sub.ID), slog.String("plan_id", sub.PlanID))
	s.forwarder.Forward(sub)
	return OutcomeCreated, &sub, nil
}
