// Package forwarder доставляет созданные подписки во внешнюю таблицу в фоне.
//
// Доставка не влияет на ответ клиенту: каждая запись отправляется в отдельной
// горутине с собственным таймаутом, ошибки только логируются.
package forwarder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/metrics"
	"github.com/magabrotheeeer/elevator/internal/models"
)

// Sink получатель записей.
type Sink interface {
	Send(ctx context.Context, sub models.Subscription) error
}

// Async запускает доставку каждой записи в отдельной горутине.
type Async struct {
	sink    Sink
	timeout time.Duration
	log     *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewAsync создаёт Async. timeout ограничивает одну доставку.
func NewAsync(sink Sink, timeout time.Duration, log *slog.Logger) *Async {
	return &Async{
		sink:    sink,
		timeout: timeout,
		log:     log.With(slog.String("component", "forwarder")),
	}
}

// Forward ставит запись в доставку и сразу возвращается.
func (a *Async) Forward(sub models.Subscription) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		metrics.Forwards.WithLabelValues(metrics.OutcomeDropped).Inc()
		a.log.Warn("forwarder closed, record dropped", slog.String("id", sub.ID))
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.sink.Send(ctx, sub); err != nil {
			metrics.Forwards.WithLabelValues(metrics.OutcomeFailure).Inc()
			a.log.Error("failed to forward subscription",
				slog.String("id", sub.ID),
				slog.String("transaction_id", sub.TransactionID),
				sl.Err(err),
			)
			return
		}
		metrics.Forwards.WithLabelValues(metrics.OutcomeSuccess).Inc()
		a.log.Debug("subscription forwarded", slog.String("id", sub.ID))
	}()
}

// Shutdown перестаёт принимать записи и ждёт доставок в работе, пока не истечёт ctx.
func (a *Async) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("forwarder: in-flight deliveries not finished"), ctx.Err())
	}
}

// Nop выключенная пересылка.
type Nop struct{}

// Forward ничего не делает.
func (Nop) Forward(models.Subscription) {}
