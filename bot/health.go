package bot

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported by the bot.
const ServiceName = "surveybot"

// HealthServer exposes the standard gRPC health service. It reports SERVING
// while the Discord session is connected.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	lis    net.Listener
	logger *zap.Logger
}

// NewHealthServer listens on addr. The status starts as NOT_SERVING.
func NewHealthServer(addr string, logger *zap.Logger) (*HealthServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bot: health listen %s: %w", addr, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &HealthServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		lis:    lis,
		logger: logger.Named("health"),
	}
	healthpb.RegisterHealthServer(h.server, h.health)
	h.SetServing(false)
	return h, nil
}

// Addr returns the listening address.
func (h *HealthServer) Addr() string {
	return h.lis.Addr().String()
}

// Serve blocks until Stop is called.
func (h *HealthServer) Serve() error {
	h.logger.Info("health server listening", zap.String("addr", h.Addr()))
	if err := h.server.Serve(h.lis); err != nil && err != grpc.ErrServerStopped {
		return err
	}
	return nil
}

// SetServing updates both the overall and the named service status.
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Stop marks the service as shutting down and stops the server.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
