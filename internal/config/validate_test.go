package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sentinel/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "https backend", mutate: func(c *Config) { c.Backend.URL = "https://ops.example.com/api" }},
		{name: "minimum interval", mutate: func(c *Config) { c.Refresh.Interval = 500 * time.Millisecond }},
		{name: "metrics addr", mutate: func(c *Config) { c.Metrics.Addr = ":9464" }},
		{name: "empty log level", mutate: func(c *Config) { c.Log.Level = "" }},

		{name: "future version", mutate: func(c *Config) { c.Version = 99 }, wantErr: "from the future"},
		{name: "empty url", mutate: func(c *Config) { c.Backend.URL = "" }, wantErr: "backend.url is empty"},
		{name: "bad scheme", mutate: func(c *Config) { c.Backend.URL = "ftp://x/api" }, wantErr: "not an http(s) URL"},
		{name: "no host", mutate: func(c *Config) { c.Backend.URL = "localhost:5000" }, wantErr: "not an http(s) URL"},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.Timeout = 0 }, wantErr: "backend.timeout"},
		{name: "interval too short", mutate: func(c *Config) { c.Refresh.Interval = 100 * time.Millisecond }, wantErr: "too short"},
		{name: "zero clock", mutate: func(c *Config) { c.Refresh.Clock = 0 }, wantErr: "refresh.clock"},
		{name: "zero window", mutate: func(c *Config) { c.Windows.Sparkline = 0 }, wantErr: "windows.sparkline"},
		{name: "zero radar divisor", mutate: func(c *Config) { c.Scaling.RadarResponseDivisor = 0 }, wantErr: "radar_response_divisor"},
		{name: "negative card divisor", mutate: func(c *Config) { c.Scaling.CardResponseDivisor = -1 }, wantErr: "card_response_divisor"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "bad metrics addr", mutate: func(c *Config) { c.Metrics.Addr = "9464" }, wantErr: "metrics.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	require.Error(t, Validate(nil))
}
