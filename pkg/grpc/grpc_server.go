package grpc

import (
	"context"
	"net"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
)

type PDMServer struct {
	PDM      *pdm.PDM
	Limiters *pdm.ClientLimiters // nil disables rate limiting
}

// RateLimitedMethods are the calls that run the scoring pipeline or touch
// the store.
var RateLimitedMethods = []string{
	MethodGetPredictions,
	MethodGetAlerts,
	MethodGetHistorical,
	MethodRecordMaintenance,
}

func (s *PDMServer) CheckClientLimiter(clientID string) bool {
	if s.Limiters == nil {
		return true
	}
	return s.Limiters.Allow(clientID)
}

// clientID keys the limiter by peer host, or the whole address when it has
// no port (in-memory listeners).
func clientID(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// NewServer builds a gRPC server with Prometheus and rate-limit interceptors
// and the service registered.
func NewServer(s *PDMServer, opts ...grpc.ServerOption) *grpc.Server {
	grpc_prometheus.EnableHandlingTimeHistogram()

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			grpc_prometheus.UnaryServerInterceptor,
			s.CreateRateLimitInterceptor(RateLimitedMethods),
		),
		grpc.ChainStreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	)
	server := grpc.NewServer(opts...)
	RegisterPredictiveMaintenanceServer(server, s)
	grpc_prometheus.Register(server)
	return server
}
