// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors, database migrations (via goose)
// and the startup schema check.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/softasistence/internal/dbx"
	"github.com/dmitrijs2005/softasistence/internal/server/migrations"
	"github.com/dmitrijs2005/softasistence/internal/server/repositories/users"
)

// ErrSchemaInvalid is returned by VerifySchema when usuarios lacks a
// required column.
var ErrSchemaInvalid = errors.New("invalid usuarios table schema")

// RequiredUserColumns are the columns the credential store reads.
var RequiredUserColumns = []string{"cedula", "nombre", "apellido", "email", "password_hash", "rol", "activo"}

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes schema migration and verification hooks.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// VerifySchema checks that usuarios exposes every RequiredUserColumns entry.
// It is meant to run once during startup.
func (m *PostgresRepositoryManager) VerifySchema(ctx context.Context, db dbx.DBTX) error {
	query :=
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1
		 `

	rows, err := db.QueryContext(ctx, query, "usuarios")
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	present := make(map[string]struct{}, len(RequiredUserColumns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		present[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	var missing []string
	for _, col := range RequiredUserColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchemaInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
