// Package planget реализует HTTP-обработчик чтения тарифа по идентификатору.
package planget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elevator/internal/http/response"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
	"github.com/magabrotheeeer/elevator/internal/services/plan"
)

// Service источник тарифов.
type Service interface {
	Get(ctx context.Context, planID string) (*models.Plan, error)
}

// Handler обрабатывает GET /plans/{planId}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить тариф
// @Tags Plans
// @Produce json
// @Param planId path string true "Идентификатор тарифа"
// @Success 200 {object} models.Plan
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /plans/{planId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.get"
	planID := chi.URLParam(r, "planId")
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("plan_id", planID),
	)

	p, err := h.service.Get(r.Context(), planID)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			log.Info("plan not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Plan not found"))
			return
		}
		log.Error("failed to get plan", sl.Err(err))
		report.Error(r.Context(), err, report.With("plan_id", planID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, p)
}
