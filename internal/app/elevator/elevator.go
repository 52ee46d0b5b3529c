// Package elevator собирает HTTP API сервиса: хранилище, кэш, платёжный провайдер,
// пересылку подписок во внешнюю таблицу и gRPC health-сервер.
package elevator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/elevator/internal/cache"
	"github.com/magabrotheeeer/elevator/internal/config"
	"github.com/magabrotheeeer/elevator/internal/forwarder"
	"github.com/magabrotheeeer/elevator/internal/grpc/health"
	"github.com/magabrotheeeer/elevator/internal/lib/jwt"
	"github.com/magabrotheeeer/elevator/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/paymentprovider"
	"github.com/magabrotheeeer/elevator/internal/services/checkout"
	"github.com/magabrotheeeer/elevator/internal/services/plan"
	"github.com/magabrotheeeer/elevator/internal/services/subscription"
	"github.com/magabrotheeeer/elevator/internal/services/user"
	"github.com/magabrotheeeer/elevator/internal/sheets"
)

const healthCheckInterval = 10 * time.Second

// App процесс HTTP API.
type App struct {
	cfg       *config.Config
	server    *http.Server
	health    *health.Server
	logger    *slog.Logger
	store     Store
	forwarder *forwarder.Async
	closers   []func() error
}

// New подключает зависимости и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.elevator.New"

	if cfg.IdentityToken.SecretKey == "" {
		return nil, fmt.Errorf("%s: identity token secret is required", op)
	}

	a := &App{cfg: cfg, logger: logger}

	store, err := OpenStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.store = store
	a.closers = append(a.closers, store.Close)

	var planCache plan.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		planCache = c
		a.closers = append(a.closers, c.Close)
	} else {
		logger.Warn("redis address is empty, plan cache disabled")
	}

	fwd, err := a.newForwarder()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plans := plan.New(store, planCache, cfg.PlanTTL, logger)
	deps := Deps{
		Users:         user.New(store, logger),
		Plans:         plans,
		Subscriptions: subscription.New(store, plans, fwd, cfg.FreePlanID, logger),
		Checkout:      checkout.New(plans, paymentprovider.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.Currency), logger),
		Verifier:      paymentprovider.NewWebhookVerifier(cfg.Stripe.WebhookSecret),
		Tokens: jwt.NewJWTMaker(cfg.IdentityToken.SecretKey, 0,
			jwt.WithIssuer(cfg.IdentityToken.Issuer),
			jwt.WithAudience(cfg.IdentityToken.Audience),
		),
	}
	if cfg.Stripe.WebhookSecret == "" {
		logger.Warn("stripe webhook secret is empty, webhook signatures are not verified")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, deps)

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	if cfg.AddressGRPC != "" {
		a.health = health.NewServer(store, healthCheckInterval, logger)
	}
	return a, nil
}

func (a *App) newForwarder() (subscription.Forwarder, error) {
	switch a.cfg.Sink.Mode {
	case config.SinkModeDirect:
		a.forwarder = forwarder.NewAsync(sheets.New(a.cfg.Sink.URL, nil), a.cfg.Sink.Timeout, a.logger)
		return a.forwarder, nil

	case config.SinkModeQueue:
		conn, err := rabbitmq.Connect(a.cfg.RabbitMQURL, a.cfg.RabbitMQMaxRetries, a.cfg.RabbitMQRetryDelay)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.SubscriptionsExchange, a.cfg.RabbitMQPrefetch, rabbitmq.GetSubscriptionQueues())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, ch.Close)
		go a.watchConnection(conn)

		pub := rabbitmq.NewPublisher(ch, rabbitmq.SubscriptionsExchange, rabbitmq.SubscriptionCreatedKey)
		a.forwarder = forwarder.NewAsync(forwarder.NewQueueSink(pub), a.cfg.Sink.Timeout, a.logger)
		return a.forwarder, nil

	default:
		a.logger.Warn("subscription forwarding is off")
		return forwarder.Nop{}, nil
	}
}

func (a *App) watchConnection(conn *amqp.Connection) {
	if err, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1)); ok && err != nil {
		a.logger.Error("rabbitmq connection closed", slog.String("reason", err.Reason))
	}
}

// Run запускает серверы и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	var lis net.Listener
	if a.health != nil {
		l, err := net.Listen("tcp", a.cfg.AddressGRPC)
		if err != nil {
			return fmt.Errorf("app.elevator.Run: %w", err)
		}
		lis = l
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if lis != nil {
		g.Go(func() error { return a.health.Serve(gctx, lis) })
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *App) shutdown() error {
	timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down HTTP server gracefully")
	err := a.server.Shutdown(timeoutCtx)

	if a.forwarder != nil {
		if ferr := a.forwarder.Shutdown(timeoutCtx); ferr != nil {
			a.logger.Warn("forwarder shutdown incomplete", sl.Err(ferr))
		}
	}
	a.close()
	return err
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
}
