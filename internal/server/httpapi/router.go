// Package httpapi is the REST surface of the auth service, built on gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/dbx"
	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
	"github.com/dmitrijs2005/softasistence/internal/server/metrics"
)

// Deps are the collaborators of the router. Metrics may be nil.
type Deps struct {
	Auth     Authenticator
	Verifier TokenVerifier
	DB       dbx.Pinger
	Metrics  *metrics.Metrics
	Logger   logging.Logger
}

// ModeFor maps a deployment environment to a gin mode. Anything other
// than development or test runs in release mode.
func ModeFor(env string) string {
	switch env {
	case "development":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// NewRouter builds the gin engine with the middleware chain and routes:
//
//	POST /api/auth/login
//	GET  /api/auth/me      (bearer token required)
//	GET  /api/health
//	GET  /metrics
func NewRouter(d Deps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = logging.Nop{}
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	if d.Metrics != nil {
		router.Use(MetricsMiddleware(d.Metrics))
	}
	router.Use(CORSMiddleware())
	router.Use(SecurityMiddleware())

	authHandler := NewAuthHandler(d.Auth, log)
	healthHandler := NewHealthHandler(d.DB, log)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", RequireAuth(d.Verifier), authHandler.Me)

		api.GET("/health", healthHandler.Health)
	}

	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Failure(common.MsgNotFound))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.Failure(common.MsgNotFound))
	})

	return router
}
