package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
)

// AuthClient calls AuthService over a connection using the JSON codec.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *AuthClient) Login(ctx context.Context, in *dto.LoginRequest, opts ...grpc.CallOption) (*dto.LoginData, error) {
	out := new(dto.LoginData)
	if err := c.cc.Invoke(ctx, LoginMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// Me sends token as bearer authorization metadata.
func (c *AuthClient) Me(ctx context.Context, token string, opts ...grpc.CallOption) (*dto.MeData, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationMetadataKey, common.BearerScheme+" "+token)
	out := new(dto.MeData)
	if err := c.cc.Invoke(ctx, MeMethod, &MeRequest{}, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
