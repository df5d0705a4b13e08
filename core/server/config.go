package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeout bounds reading a request, uploads included.
	ReadTimeout time.Duration `mapstructure:"read_timeout" default:"60s"`
	// BodyLimitMB caps a whole request, every uploaded workbook included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"256"`
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// BodyLimit returns BodyLimitMB in bytes. Zero keeps Fiber's default.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 0
	}
	return c.BodyLimitMB << 20
}
