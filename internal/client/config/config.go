package config

import (
	"errors"
	"time"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config holds runtime settings for the attendctl CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - GRPCAddr: host:port of the gRPC endpoint.
//   - Transport: "http" or "grpc".
//   - Timeout: per-request deadline.
type Config struct {
	ServerURL string
	GRPCAddr  string
	Transport string
	Timeout   time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.GRPCAddr = "localhost:50051"
	c.Transport = TransportHTTP
	c.Timeout = 10 * time.Second
}

func (c *Config) Validate() error {
	var errs []error
	if c.Transport != TransportHTTP && c.Transport != TransportGRPC {
		errs = append(errs, errors.New(`transport must be "http" or "grpc"`))
	}
	if c.Transport == TransportHTTP && c.ServerURL == "" {
		errs = append(errs, errors.New("server URL is required"))
	}
	if c.Transport == TransportGRPC && c.GRPCAddr == "" {
		errs = append(errs, errors.New("gRPC address is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig applies defaults, then the JSON file at path (if not empty),
// then ATTENDCTL_* environment variables. Command flags are applied by
// the caller on top of the result.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
