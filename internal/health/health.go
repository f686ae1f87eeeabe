package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// ServiceName is reported next to the overall ("") status.
const ServiceName = "tinyhttpd"

type Server interface {
	Listen() (net.Listener, error)
	Serve(ctx context.Context, listener net.Listener) error
}

type server struct {
	address string
	logger  *zap.Logger
}

func NewServer(address string, logger *zap.Logger) Server {
	return &server{
		address: address,
		logger:  logger,
	}
}

func (s *server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.address)
}

// Serve reports SERVING until ctx is cancelled, then flips to NOT_SERVING and
// stops gracefully.
func (s *server) Serve(ctx context.Context, listener net.Listener) error {
	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    2 * time.Minute,
			Timeout: 10 * time.Second,
		}),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	stop := context.AfterFunc(ctx, func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	})
	defer stop()

	s.logger.Info("health server is starting", zap.Stringer("address", listener.Addr()))
	if err := grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("serve health: %w", err)
	}
	s.logger.Info("health server stopped")
	return nil
}

// Check asks the health server at address for the status of service and
// fails unless it is SERVING.
func Check(ctx context.Context, address, service string) error {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial health server: %w", err)
	}
	defer conn.Close()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: service,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("server not serving: %v", resp.Status)
	}
	return nil
}
