package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func() *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "db", "-s", "secret", "-t", "12h", "-l", "debug"},
			expected: func() *Config {
				c := defaults()
				c.HTTPAddr = "127.0.0.1:9090"
				c.GRPCAddr = ":6000"
				c.DatabaseDSN = "db"
				c.SecretKey = "secret"
				c.TokenLifetime = 12 * time.Hour
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "cfg.json", "-env", "x.env", "-t", "1d"},
			expected: func() *Config {
				c := defaults()
				c.TokenLifetime = 24 * time.Hour
				return c
			},
		},
		{
			name:     "no flags",
			expected: defaults,
		},
		{
			name:    "bad lifetime",
			args:    []string{"-t", "later"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			config := defaults()
			err := parseFlags(config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected(), config))
		})
	}
}
