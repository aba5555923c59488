package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/softasistence/internal/dbx"
	"github.com/dmitrijs2005/softasistence/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	VerifySchema(context.Context, dbx.DBTX) error
	Users(db dbx.DBTX) users.Repository
}
