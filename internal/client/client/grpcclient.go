package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/softasistence/internal/server/dto"

	gs "github.com/dmitrijs2005/softasistence/internal/server/grpc"
)

// GRPCClient calls the gRPC auth service over a plaintext connection.
type GRPCClient struct {
	conn   *grpc.ClientConn
	client *gs.AuthClient
}

func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn, client: gs.NewAuthClient(conn)}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Login(ctx context.Context, in *dto.LoginRequest) (*dto.LoginData, error) {
	out, err := c.client.Login(ctx, in)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (c *GRPCClient) Me(ctx context.Context, token string) (*dto.Identity, error) {
	out, err := c.client.Me(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	return &out.User, nil
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &APIError{Kind: ErrUnavailable, Message: err.Error()}
	}

	var kind error
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	case codes.InvalidArgument:
		kind = ErrBadRequest
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.PermissionDenied:
		kind = ErrForbidden
	default:
		kind = ErrServer
	}
	return &APIError{Kind: kind, Message: st.Message()}
}
