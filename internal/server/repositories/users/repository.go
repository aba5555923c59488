package users

import (
	"context"

	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

// Repository is the credential store. Lookups return common.ErrorNotFound
// when no row matches.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, cedula int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
