package elevator

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/elevator/docs" // swagger spec

	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/health"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/payment/paymentintent"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/plans/planget"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/subscription/free"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/users/usercreate"
	"github.com/magabrotheeeer/elevator/internal/http/handlers/users/userlist"
	"github.com/magabrotheeeer/elevator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elevator/internal/metrics"
)

// Users сервис пользователей.
type Users interface {
	usercreate.Service
	userlist.Service
}

// Subscriptions сервис подписок.
type Subscriptions interface {
	free.Service
	paymentwebhook.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Users         Users
	Plans         planget.Service
	Subscriptions Subscriptions
	Checkout      paymentintent.Service
	Verifier      paymentwebhook.Verifier
	Tokens        middlewarectx.TokenParser
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
		middlewarectx.CORS(cfg.AllowedOrigins),
	)

	r.Method(http.MethodGet, "/", health.New())

	r.Method(http.MethodPost, "/users", usercreate.New(logger, d.Users))
	r.Method(http.MethodGet, "/users", userlist.New(logger, d.Users))
	r.Method(http.MethodGet, "/plans/{planId}", planget.New(logger, d.Plans))
	r.Method(http.MethodPost, "/free", free.New(logger, d.Subscriptions))

	// Группа с проверкой токена личности
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst, logger))
		r.Use(middlewarectx.JWTMiddleware(d.Tokens, logger))
		r.Method(http.MethodPost, "/api/create-payment-intent", paymentintent.New(logger, d.Checkout))
	})

	// Webhook endpoint (подпись Stripe вместо токена)
	r.Method(http.MethodPost, "/webhook", paymentwebhook.New(logger, d.Verifier, d.Subscriptions))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
