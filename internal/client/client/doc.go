// Package client talks to the softasistence auth service.
//
// The Client interface has two implementations: HTTPClient speaks the REST
// API through resty, GRPCClient speaks the gRPC service with the JSON codec.
// Both map failures to the sentinel errors in errors.go, so callers can
// match them with errors.Is regardless of transport. The server message,
// when there is one, is kept in *APIError.
package client
