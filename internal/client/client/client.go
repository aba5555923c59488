package client

import (
	"context"

	"github.com/dmitrijs2005/softasistence/internal/server/dto"
)

type Client interface {
	Close() error
	Login(ctx context.Context, in *dto.LoginRequest) (*dto.LoginData, error)
	Me(ctx context.Context, token string) (*dto.Identity, error)
}
