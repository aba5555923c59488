package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/authctx"
)

const requestIDMetadataKey = "x-request-id"

// protectedMethods require a bearer token.
var protectedMethods = map[string]struct{}{
	MeMethod: {},
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	token, ok := authctx.BearerToken(firstMetadata(ctx, common.AuthorizationMetadataKey))
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.MsgTokenRequired)
	}

	claims := s.verifier.Verify(token)
	if claims == nil {
		return nil, status.Error(codes.Unauthenticated, common.MsgInvalidToken)
	}

	return handler(authctx.WithClaims(ctx, claims), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	requestID := firstMetadata(ctx, requestIDMetadataKey)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	l := s.logger.With("request_id", requestID)
	ctx = logging.WithLogger(ctx, l)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	l.Info(ctx, "rpc", "method", info.FullMethod, "code", code.String(), "latency_ms", time.Since(start).Milliseconds())
	if s.observer != nil {
		s.observer.ObserveRequest("grpc", info.FullMethod, code.String(), time.Since(start))
	}

	return resp, err
}

func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "panic recovered", "method", info.FullMethod, "panic", r)
			err = status.Error(codes.Internal, common.MsgInternalError)
		}
	}()
	return handler(ctx, req)
}
