// Package services contains server-side business logic. This file implements
// AuthService, which authenticates credentials against the user store and
// issues session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/metrics"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

// TokenIssuer mints session tokens. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Issue(c auth.Claims) (string, error)
}

// LoginObserver counts login outcomes. *metrics.Metrics satisfies it.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// LoginResult is a successful login: the public user and its token.
type LoginResult struct {
	User  *models.PublicUser
	Token string
}

// AuthService provides authentication-related operations:
// - Authenticate: look up a user and check activity and password
// - Login: Authenticate and mint a token
// - CreateUser: seed an account with a bcrypt hash
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	observer    LoginObserver
	log         logging.Logger
	hashCost    int
}

type noopObserver struct{}

func (noopObserver) ObserveLogin(string) {}

// NewAuthService constructs an AuthService. observer may be nil.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, observer LoginObserver, log logging.Logger) *AuthService {
	if observer == nil {
		observer = noopObserver{}
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		observer:    observer,
		log:         log,
		hashCost:    auth.DefaultCost,
	}
}

// Authenticate resolves creds to an active user whose password matches.
// Email is tried before cedula. Unknown identifiers and wrong passwords
// both yield common.ErrInvalidCredentials; store failures are logged and
// reported as common.ErrorInternal.
func (s *AuthService) Authenticate(ctx context.Context, creds models.Credentials) (*models.PublicUser, error) {
	log := logging.FromContext(ctx, s.log)
	repo := s.repomanager.Users(s.db)

	var (
		user *models.User
		err  error
	)
	switch {
	case creds.Email != nil:
		user, err = repo.GetByEmail(ctx, *creds.Email)
	case creds.Cedula != nil:
		user, err = repo.GetByID(ctx, *creds.Cedula)
	default:
		return nil, s.fail(common.ErrInvalidCredentials)
	}

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, s.fail(common.ErrInvalidCredentials)
		}
		log.Error(ctx, "user lookup failed", "error", err)
		return nil, s.fail(common.ErrorInternal)
	}

	if !user.Active {
		log.Info(ctx, "login rejected for inactive account", "cedula", user.ID)
		return nil, s.fail(common.ErrAccountInactive)
	}

	if creds.Password == nil || !auth.ComparePassword(user.PasswordHash, *creds.Password) {
		return nil, s.fail(common.ErrInvalidCredentials)
	}

	return user.Public(), nil
}

// Login authenticates creds and issues a token for the resulting user.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(auth.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	})
	if err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "token issue failed", "error", err)
		return nil, s.fail(common.ErrorInternal)
	}

	s.observer.ObserveLogin(metrics.OutcomeSuccess)
	return &LoginResult{User: user, Token: token}, nil
}

// CreateUser validates u, hashes the password and inserts the account.
// Duplicates yield common.ErrorAlreadyExists.
func (s *AuthService) CreateUser(ctx context.Context, u validators.NewUser, active bool) (*models.User, error) {
	if err := validators.ValidateNewUser(u); err != nil {
		return nil, err
	}

	cedula, err := strconv.ParseInt(u.Cedula, 10, 64)
	if err != nil {
		return nil, &validators.ValidationError{Code: validators.CodeInvalidIDFormat, Message: err.Error()}
	}

	hash, err := auth.HashPassword(u.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           cedula,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: hash,
		Role:         models.NormalizeRole(u.Role),
		Active:       active,
	}
	if u.Email != "" {
		email := u.Email
		user.Email = &email
	}

	return s.repomanager.Users(s.db).Create(ctx, user)
}

func (s *AuthService) fail(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		s.observer.ObserveLogin(metrics.OutcomeInvalidCredentials)
	case errors.Is(err, common.ErrAccountInactive):
		s.observer.ObserveLogin(metrics.OutcomeInactive)
	default:
		s.observer.ObserveLogin(metrics.OutcomeError)
	}
	return err
}
