package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/dbx"
	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/authctx"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
	"github.com/dmitrijs2005/softasistence/internal/server/models"
	"github.com/dmitrijs2005/softasistence/internal/server/services"
	"github.com/dmitrijs2005/softasistence/internal/server/validators"
)

const healthTimeout = 2 * time.Second

// Authenticator logs users in. *services.AuthService satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*services.LoginResult, error)
}

type AuthHandler struct {
	auth Authenticator
	log  logging.Logger
}

func NewAuthHandler(a Authenticator, log logging.Logger) *AuthHandler {
	return &AuthHandler{auth: a, log: log}
}

// statusFor maps an error kind to its HTTP status and public message.
func statusFor(err error) (int, string) {
	var verr *validators.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.MsgInvalidCredentials
	case errors.Is(err, common.ErrAccountInactive):
		return http.StatusForbidden, common.MsgAccountInactive
	case errors.Is(err, common.ErrAuthenticationRequired):
		return http.StatusUnauthorized, common.MsgTokenRequired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.MsgInvalidToken
	default:
		return http.StatusInternalServerError, common.MsgInternalError
	}
}

func abortWithError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	c.AbortWithStatusJSON(code, dto.Failure(msg))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	// An empty body is read as {}.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Failure(common.MsgMalformedRequest))
		return
	}

	creds := req.Credentials()
	if err := validators.ValidateLoginCredentials(creds); err != nil {
		abortWithError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), creds)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(common.MsgLoginSuccess, dto.LoginData{User: res.User, Token: res.Token}))
}

// Me handles GET /api/auth/me behind RequireAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := authctx.ClaimsFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(common.MsgUnauthorized))
		return
	}
	c.JSON(http.StatusOK, dto.Success(common.MsgCurrentUser, dto.MeData{User: dto.IdentityFromClaims(claims)}))
}

// ClaimsFromGin returns the claims RequireAuth stored on c.
func ClaimsFromGin(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

type HealthHandler struct {
	db  dbx.Pinger
	log logging.Logger
}

func NewHealthHandler(db dbx.Pinger, log logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health handles GET /api/health. Ping failures are logged, never returned.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logging.FromContext(ctx, h.log).Warn(ctx, "database ping failed", "error", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.Failure(common.MsgDatabaseDown))
		return
	}
	c.JSON(http.StatusOK, dto.Success(common.MsgServiceUp, dto.HealthData{DB: "up"}))
}
