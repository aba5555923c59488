package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/softasistence/internal/timex"
)

func parseEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("ATTENDCTL_SERVER"); ok {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("ATTENDCTL_GRPC_ADDR"); ok {
		cfg.GRPCAddr = v
	}
	if v, ok := os.LookupEnv("ATTENDCTL_TRANSPORT"); ok {
		cfg.Transport = v
	}
	if v, ok := os.LookupEnv("ATTENDCTL_TIMEOUT"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ATTENDCTL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}
