package forwarder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
	"github.com/magabrotheeeer/elevator/internal/metrics"
	"github.com/magabrotheeeer/elevator/internal/models"
)

// Publisher публикует сообщение в брокер.
type Publisher interface {
	Publish(ctx context.Context, message any) error
}

// QueueSink вместо HTTP-запроса публикует запись в RabbitMQ,
// откуда её забирает cmd/sheet-forwarder.
type QueueSink struct {
	pub Publisher
}

// NewQueueSink создаёт QueueSink.
func NewQueueSink(pub Publisher) *QueueSink {
	return &QueueSink{pub: pub}
}

// Send публикует запись.
func (q *QueueSink) Send(ctx context.Context, sub models.Subscription) error {
	const op = "forwarder.QueueSink.Send"
	if err := q.pub.Publish(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// QueueHandler возвращает обработчик сообщений очереди, доставляющий запись в sink.
// Нечитаемые сообщения отбрасываются, иначе они возвращались бы в очередь бесконечно.
// Ошибка доставки возвращается вызывающему, и сообщение уходит на повтор.
func QueueHandler(sink Sink, timeout time.Duration, log *slog.Logger) func(context.Context, []byte) error {
	log = log.With(slog.String("component", "sheet-forwarder"))
	return func(ctx context.Context, body []byte) error {
		const op = "forwarder.QueueHandler"

		var sub models.Subscription
		if err := json.Unmarshal(body, &sub); err != nil {
			log.Error("dropping malformed message", sl.Err(err))
			metrics.Forwards.WithLabelValues(metrics.OutcomeDropped).Inc()
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := sink.Send(ctx, sub); err != nil {
			metrics.Forwards.WithLabelValues(metrics.OutcomeFailure).Inc()
			return fmt.Errorf("%s: %w", op, err)
		}
		metrics.Forwards.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.Debug("subscription forwarded", slog.String("id", sub.ID))
		return nil
	}
}
