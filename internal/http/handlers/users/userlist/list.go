// Package userlist реализует HTTP-обработчик списка пользователей с необязательным фильтром по email.
package userlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elevator/internal/http/response"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
)

// Service описывает бизнес-логику чтения пользователей.
type Service interface {
	List(ctx context.Context, email string) ([]*models.User, error)
}

// Handler обрабатывает GET /users.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Data тело успешного ответа.
type Data struct {
	Count int            `json:"count"`
	Users []*models.User `json:"users"`
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Param email query string false "Фильтр по email"
// @Success 200 {object} response.Response{data=Data}
// @Failure 404 {object} response.ErrorResponse "Пользователи не найдены"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := r.URL.Query().Get("email")
	users, err := h.service.List(r.Context(), email)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		report.Error(r.Context(), err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}
	if len(users) == 0 {
		log.Info("no users found", slog.String("email", email))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("No users found"))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OK("Users fetched successfully", Data{Count: len(users), Users: users}))
}
