package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
)

const (
	qByEmail = `(?s)^SELECT\s+cedula,\s*nombre,\s*apellido,\s*email,\s*password_hash,\s*rol,\s*activo\s+FROM\s+usuarios\s+WHERE\s+email\s*=\s*\$1\s+LIMIT\s+1$`
	qByID    = `(?s)^SELECT\s+cedula,\s*nombre,\s*apellido,\s*email,\s*password_hash,\s*rol,\s*activo\s+FROM\s+usuarios\s+WHERE\s+cedula\s*=\s*\$1\s+LIMIT\s+1$`
	qInsert  = `(?s)^INSERT\s+INTO\s+usuarios\s*\(cedula,\s*nombre,\s*apellido,\s*email,\s*password_hash,\s*rol,\s*activo\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+fecha_creacion,\s*fecha_actualizacion\s*$`
)

var userColumns = []string{"cedula", "nombre", "apellido", "email", "password_hash", "rol", "activo"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(12345678), "Ana", "Pérez", "ana@example.com", "$2a$10$hash", "Instructor", true)
	mock.ExpectQuery(qByEmail).
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "  ANA@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 12345678 || got.FirstName != "Ana" || got.LastName != "Pérez" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.Email == nil || *got.Email != "ana@example.com" {
		t.Fatalf("unexpected email: %v", got.Email)
	}
	if got.Role != models.RoleInstructor {
		t.Fatalf("role not normalized: %q", got.Role)
	}
	if !got.Active || got.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByEmail).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByEmail).
		WithArgs("ana@example.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "ana@example.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found_NullEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(87654321), "Luis", "Gómez", nil, "$2a$10$hash", "administrador", false)
	mock.ExpectQuery(qByID).
		WithArgs(int64(87654321)).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), 87654321)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != nil {
		t.Fatalf("expected nil email, got %q", *got.Email)
	}
	if got.Role != models.RoleAdministrator || got.Active {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByID).
		WithArgs(int64(11111111)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), 11111111)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByID).
		WithArgs(int64(11111111)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), 11111111)
	if err == nil || !regexp.MustCompile(`db error: .*connection refused`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("db failure must not look like not found")
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(qInsert).
		WithArgs(int64(12345678), "Prueba", "Auth", "prueba.auth@sena.edu.co", "$2a$10$hash", "instrutor", true).
		WillReturnRows(sqlmock.NewRows([]string{"fecha_creacion", "fecha_actualizacion"}).AddRow(now, now))

	email := " Prueba.Auth@SENA.edu.co"
	u := &models.User{
		ID:           12345678,
		FirstName:    "Prueba",
		LastName:     "Auth",
		Email:        &email,
		PasswordHash: "$2a$10$hash",
		Role:         "instructor",
		Active:       true,
	}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Role != models.RoleInstructor || *got.Email != "prueba.auth@sena.edu.co" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not scanned: %+v", got)
	}
}

func TestCreate_NullEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(qInsert).
		WithArgs(int64(12345678), "Prueba", "Auth", nil, "h", "administrador", true).
		WillReturnRows(sqlmock.NewRows([]string{"fecha_creacion", "fecha_actualizacion"}).AddRow(now, now))

	blank := "  "
	got, err := repo.Create(context.Background(), &models.User{
		ID: 12345678, FirstName: "Prueba", LastName: "Auth", Email: &blank,
		PasswordHash: "h", Role: models.RoleAdministrator, Active: true,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Email != nil {
		t.Fatalf("blank email should be stored as NULL")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &models.User{ID: 12345678, Role: models.RoleInstructor})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_UnknownRole(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), &models.User{ID: 12345678, Role: "aprendiz"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want common.ErrValidation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{ID: 12345678, Role: models.RoleInstructor})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
