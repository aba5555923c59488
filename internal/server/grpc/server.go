// Package grpc exposes the auth service over gRPC with a JSON codec.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/services"
)

// Authenticator logs users in. *services.AuthService satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*services.LoginResult, error)
}

// TokenVerifier decodes bearer tokens. *auth.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(token string) *auth.Claims
}

// RequestObserver records finished calls. *metrics.Metrics satisfies it.
type RequestObserver interface {
	ObserveRequest(transport, route, status string, elapsed time.Duration)
}

type GRPCServer struct {
	address  string
	auth     Authenticator
	verifier TokenVerifier
	observer RequestObserver
	logger   logging.Logger
}

// NewGRPCServer builds the server. observer may be nil.
func NewGRPCServer(a string, l logging.Logger, au Authenticator, v TokenVerifier, o RequestObserver) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		auth:     au,
		verifier: v,
		observer: o,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.loggingInterceptor,
		s.accessTokenInterceptor,
	))
	RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts calls on l until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, l net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", l.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(l); err != nil {
		return err
	}

	return nil
}
