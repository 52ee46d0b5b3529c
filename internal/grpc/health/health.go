// Package health реализует gRPC-сервер стандартного протокола grpc.health.v1.
//
// Статус сервиса определяется доступностью хранилища и периодически обновляется.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/elevator/internal/lib/sl"
)

// ServiceName имя сервиса в ответах health-check. Пустое имя означает весь сервер.
const ServiceName = "elevator"

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server gRPC-сервер с health-сервисом.
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	log      *slog.Logger
}

// NewServer создаёт Server. interval период проверки хранилища.
func NewServer(pinger Pinger, interval time.Duration, log *slog.Logger) *Server {
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{
		grpc:     gs,
		health:   hs,
		pinger:   pinger,
		interval: interval,
		log:      log.With(slog.String("component", "grpc-health")),
	}
}

// Check обновляет статус по результату Ping.
func (s *Server) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		s.log.Warn("storage ping failed", sl.Err(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve принимает соединения на lis и обновляет статус, пока не отменён ctx.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	const op = "grpc.health.Serve"

	s.Check(ctx)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.health.Shutdown()
				s.grpc.GracefulStop()
				return
			case <-ticker.C:
				s.Check(ctx)
			}
		}
	}()

	s.log.Info("gRPC health server starting", slog.String("address", lis.Addr().String()))
	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
