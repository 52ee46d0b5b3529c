// Package health отвечает на проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Message текст ответа GET /.
const Message = "Elevator is working"

// Handler обрабатывает GET /.
type Handler struct{}

// New создает Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce plain
// @Success 200 {string} string "Elevator is working"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.PlainText(w, r, Message)
}
