package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/softasistence/internal/flagx"
	"github.com/dmitrijs2005/softasistence/internal/timex"
)

const defaultEnvFile = ".env"

// loadDotEnv fills the process environment from a dotenv file without
// overriding variables that are already set. An explicit -env path must
// exist; the implicit ./.env is optional.
func loadDotEnv() error {
	path := flagx.EnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// parseEnv overlays values from the environment.
//
// Supported variables:
//
//	PORT               HTTP port (":" is prepended when missing)
//	GRPC_ADDR          gRPC bind address
//	DATABASE_URL       PostgreSQL DSN
//	DB_MAX_OPEN_CONNS  pool size
//	JWT_SECRET         signing key
//	JWT_EXPIRES_IN     token lifetime, e.g. "1d" or "12h"
//	LOG_LEVEL          log level
//	APP_ENV            environment name
func parseEnv(config *Config) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.HTTPAddr = portToAddr(v)
	}
	if v, ok := os.LookupEnv("GRPC_ADDR"); ok {
		config.GRPCAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("DB_MAX_OPEN_CONNS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
		}
		config.DBMaxOpenConns = n
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("JWT_EXPIRES_IN"); ok && v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		config.TokenLifetime = d
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok && v != "" {
		config.Environment = v
	}
	return nil
}

func portToAddr(v string) string {
	if _, err := strconv.Atoi(v); err == nil {
		return ":" + v
	}
	return v
}
