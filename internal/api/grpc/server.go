package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"fleetrent-backend/internal/api/grpc/interceptor"
	"fleetrent-backend/internal/metrics"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

type ServerOptions struct {
	TokenManager security.TokenManager
	Metrics      *metrics.Metrics // nil disables RPC metrics
	Reflection   bool
}

// NewServer builds the gRPC server with the reporting and health services.
// The returned health server starts out SERVING.
func NewServer(svc service.MonitoringService, opts ServerOptions) (*grpc.Server, *health.Server) {
	interceptors := []grpc.UnaryServerInterceptor{interceptor.RequestID()}
	if opts.Metrics != nil {
		interceptors = append(interceptors, opts.Metrics.UnaryInterceptor())
	}
	interceptors = append(interceptors, interceptor.NewAuthInterceptor(opts.TokenManager).Unary())

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	RegisterMonitoringServer(s, NewMonitoringHandler(svc))

	hs := health.NewServer()
	hs.SetServingStatus(MonitoringServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	// Register reflection service for grpcurl
	if opts.Reflection {
		reflection.Register(s)
	}
	return s, hs
}
