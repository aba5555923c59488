package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/dbx"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

const uniqueViolation = "23505"

const selectUser = `SELECT cedula, nombre, apellido, email, password_hash, rol, activo
	FROM usuarios
	`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user  models.User
		email sql.NullString
		role  string
	)
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &email, &user.PasswordHash, &role, &user.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if email.Valid {
		user.Email = &email.String
	}
	user.Role = models.NormalizeRole(role)
	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := selectUser + `WHERE email = $1
	LIMIT 1`

	return scanUser(r.db.QueryRowContext(ctx, query, normalizeEmail(email)))
}

func (r *PostgresRepository) GetByID(ctx context.Context, cedula int64) (*models.User, error) {
	query := selectUser + `WHERE cedula = $1
	LIMIT 1`

	return scanUser(r.db.QueryRowContext(ctx, query, cedula))
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	role := models.NormalizeRole(string(user.Role))
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", user.Role, common.ErrValidation)
	}
	user.Role = role

	var email sql.NullString
	if user.Email != nil {
		if e := normalizeEmail(*user.Email); e != "" {
			user.Email = &e
			email = sql.NullString{String: e, Valid: true}
		} else {
			user.Email = nil
		}
	}

	query :=
		`INSERT INTO usuarios (cedula, nombre, apellido, email, password_hash, rol, activo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING fecha_creacion, fecha_actualizacion
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, email, user.PasswordHash, string(user.Role), user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
