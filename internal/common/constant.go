// Package common contains shared constants, user-facing messages and
// sentinel errors used across the softasistence server and CLI.
package common

const (
	// AuthorizationHeaderName carries the bearer token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationMetadataKey carries the bearer token on gRPC calls.
	// gRPC metadata keys are always lower-case.
	AuthorizationMetadataKey = "authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// RequestIDHeaderName is echoed back on every HTTP response.
	RequestIDHeaderName = "X-Request-ID"
)

// Response messages shown to end users. The front-end renders them as is,
// so they stay in Spanish.
const (
	MsgLoginSuccess       = "Inicio de sesión exitoso"
	MsgCurrentUser        = "Usuario actual"
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgAccountInactive    = "Usuario inactivo. Contacte al administrador"
	MsgInternalError      = "Error interno del servidor"
	MsgMalformedRequest   = "Solicitud inválida"
	MsgTokenRequired      = "No autorizado: token requerido"
	MsgInvalidToken       = "Token inválido o expirado"
	MsgUnauthorized       = "No autorizado"
	MsgDatabaseDown       = "Base de datos no disponible"
	MsgServiceUp          = "Servicio disponible"
	MsgNotFound           = "Recurso no encontrado"
)
