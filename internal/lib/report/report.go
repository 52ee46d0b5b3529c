// Package report отправляет ошибки в Sentry. Без DSN все вызовы ничего не делают.
package report

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/middleware"
)

// Init настраивает клиент Sentry. Пустой dsn оставляет отправку выключенной.
func Init(dsn, env string) error {
	if dsn == "" {
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		AttachStacktrace: true,
	})
}

// Flush дожидается отправки накопленных событий.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Error отправляет ошибку вместе с request_id и дополнительными полями.
func Error(ctx context.Context, err error, extras ...Extra) {
	if err == nil {
		return
	}
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		for _, e := range extras {
			scope.SetExtra(e.Key, e.Value)
		}
		hub.CaptureException(err)
	})
}

// Extra дополнительное поле события.
type Extra struct {
	Key   string
	Value any
}

// With создаёт Extra.
func With(key string, value any) Extra {
	return Extra{Key: key, Value: value}
}
