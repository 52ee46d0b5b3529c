// Package usercreate реализует HTTP-обработчик регистрации пользователя.
//
// Повторная регистрация с тем же userId не создаёт запись, а возвращает уже сохранённого пользователя.
package usercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/elevator/internal/http/response"
	"github.com/magabrotheeeer/elevator/internal/lib/report"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/models"
)

// Request тело запроса на регистрацию.
type Request struct {
	UserID       string     `json:"userId" validate:"required"`
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required"`
	Role         string     `json:"role,omitempty"`
	IsSubscribed bool       `json:"isSubscribed,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, u models.User) (*models.User, bool, error)
}

// Handler обрабатывает POST /users.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать пользователя
// @Description Создаёт пользователя. Если userId уже занят, возвращает сохранённого пользователя со статусом 200.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} response.Response "Пользователь создан"
// @Success 200 {object} response.Response "Пользователь уже существует"
// @Failure 400 {object} response.ErrorResponse "Не заполнены обязательные поля"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Missing required fields: userId, name, email"))
		return
	}

	u := models.User{
		UserID:       req.UserID,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		IsSubscribed: req.IsSubscribed,
	}
	if req.CreatedAt != nil {
		u.CreatedAt = req.CreatedAt.UTC()
	}
	if req.UpdatedAt != nil {
		u.UpdatedAt = req.UpdatedAt.UTC()
	}

	user, created, err := h.service.Register(r.Context(), u)
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		report.Error(r.Context(), err, report.With("user_id", req.UserID))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	if !created {
		log.Info("user already exists", slog.String("user_id", user.UserID))
		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.OK("User already exists", user))
		return
	}

	log.Info("user created", slog.String("user_id", user.UserID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK("User created successfully", user))
}
