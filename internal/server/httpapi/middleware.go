package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/softasistence/internal/common"
	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/authctx"
	"github.com/dmitrijs2005/softasistence/internal/server/dto"
)

const (
	requestIDKey = "request_id"
	claimsKey    = "claims"
)

// TokenVerifier decodes bearer tokens. *auth.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(token string) *auth.Claims
}

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(common.RequestIDHeaderName, requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}

// CORSMiddleware allows any origin and answers preflight requests with 204.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// LoggerMiddleware puts a request-scoped logger into the request context and
// logs one line per finished request. Bodies are never logged.
func LoggerMiddleware(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		l := log.With(requestIDKey, c.GetString(requestIDKey))
		ctx := logging.WithLogger(c.Request.Context(), l)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		l.Info(ctx, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// HTTPObserver records finished requests. *metrics.Metrics satisfies it.
type HTTPObserver interface {
	ObserveHTTP(route string, status int, elapsed time.Duration)
}

func MetricsMiddleware(m HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
	}
}

// RecoveryMiddleware turns panics into a generic 500 envelope.
func RecoveryMiddleware(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		logging.FromContext(ctx, log).Error(ctx, "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure(common.MsgInternalError))
	})
}

// RequireAuth is the access gate. It accepts "Authorization: Bearer <token>",
// verifies the token and attaches its claims to the request context. It
// never touches the user store.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := authctx.BearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(common.MsgTokenRequired))
			return
		}

		claims := v.Verify(token)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Failure(common.MsgInvalidToken))
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(authctx.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}
