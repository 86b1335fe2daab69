// Package grpc runs the gRPC side of the server: the standard health
// service, reporting whether the book API can serve requests.
package grpc

import (
	"context"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
)

// ServiceName is the health-check name of the book API, besides the
// server-wide "" entry.
const ServiceName = "bookshelf.Books"

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
	srv     *grpc.Server
}

type options struct {
	tracerProvider trace.TracerProvider
}

type Option func(*options)

// WithTracerProvider makes the server trace RPCs with tp instead of the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// NewGRPCServer builds a server that reports NOT_SERVING until SetServing
// is called. RPCs are traced through the global tracer provider unless
// WithTracerProvider says otherwise.
func NewGRPCServer(address string, l logging.Logger, opts ...Option) *GRPCServer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
	}

	var otelOpts []otelgrpc.Option
	if o.tracerProvider != nil {
		otelOpts = append(otelOpts, otelgrpc.WithTracerProvider(o.tracerProvider))
	}

	s.srv = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler(otelOpts...)),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor),
	)
	grpc_health_v1.RegisterHealthServer(s.srv, s.health)
	s.setStatus(grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return s
}

func (s *GRPCServer) setStatus(st grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// SetServing flips the health status once storage is connected.
func (s *GRPCServer) SetServing() {
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := s.srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
