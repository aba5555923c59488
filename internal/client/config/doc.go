// Package config loads runtime configuration for the attendctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. ATTENDCTL_SERVER, ATTENDCTL_GRPC_ADDR, ATTENDCTL_TRANSPORT and
//     ATTENDCTL_TIMEOUT.
//  4. Command flags, applied by the cli package.
//
// # JSON schema
//
// Durations accept strings like "3s" or "1d", or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "grpc_addr": "localhost:50051",
//	  "transport": "http",
//	  "timeout": "10s"
//	}
package config
