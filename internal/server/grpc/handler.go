package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/authctx"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

// statusFromError maps an error kind to a gRPC status with a public message.
func statusFromError(err error) error {
	var verr *validators.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Message)
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.MsgInvalidCredentials)
	case errors.Is(err, common.ErrAccountInactive):
		return status.Error(codes.PermissionDenied, common.MsgAccountInactive)
	default:
		return status.Error(codes.Internal, common.MsgInternalError)
	}
}

func (s *GRPCServer) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginData, error) {
	creds := req.Credentials()
	if err := validators.ValidateLoginCredentials(creds); err != nil {
		return nil, statusFromError(err)
	}

	res, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, statusFromError(err)
	}

	return &dto.LoginData{User: res.User, Token: res.Token}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *MeRequest) (*dto.MeData, error) {
	claims, ok := authctx.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.MsgUnauthorized)
	}
	return &dto.MeData{User: dto.IdentityFromClaims(claims)}, nil
}
