package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/softasistence/internal/flagx"
	"github.com/dmitrijs2005/softasistence/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Absent fields
// leave the current value untouched. TokenLifetime accepts "1d"-style
// strings or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr       *string         `json:"http_addr"`
	GRPCAddr       *string         `json:"grpc_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	DBMaxOpenConns *int            `json:"db_max_open_conns"`
	SecretKey      *string         `json:"secret_key"`
	TokenLifetime  *timex.Duration `json:"token_lifetime"`
	LogLevel       *string         `json:"log_level"`
	Environment    *string         `json:"environment"`
}

// parseJson overlays values from the file named by -c or -config.
// Without the flag nothing is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.Environment, c.Environment)
	if c.DBMaxOpenConns != nil {
		config.DBMaxOpenConns = *c.DBMaxOpenConns
	}
	if c.TokenLifetime != nil {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
