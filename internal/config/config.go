package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration shared by the server and the CLI.
type Config struct {
	Server ServerConfig `yaml:"server"`
	CORS   CORSConfig   `yaml:"cors"`
	Log    LogConfig    `yaml:"log"`
	Scan   ScanConfig   `yaml:"scan"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxBodyBytes bounds POST /api/scan/text bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"1048576"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ScanConfig holds the defaults applied to scan requests that leave them
// out.
type ScanConfig struct {
	Meter             string `yaml:"meter"              env:"SCAN_METER"              env-default:"hexameter"`
	OptionalTransform bool   `yaml:"optional_transform" env:"SCAN_OPTIONAL_TRANSFORM" env-default:"false"`
	DactylSmoothing   bool   `yaml:"dactyl_smoothing"   env:"SCAN_DACTYL_SMOOTHING"   env-default:"false"`
	Workers           int    `yaml:"workers"            env:"SCAN_WORKERS"            env-default:"8"`
	// MaxLines bounds the lines of one POST /api/scan/text request.
	MaxLines int `yaml:"max_lines" env:"SCAN_MAX_LINES" env-default:"5000"`
	// Lexicon is an optional "form<TAB>macronized" file used to mark long
	// vowels of lines given without macrons.
	Lexicon string `yaml:"lexicon" env:"SCAN_LEXICON"`
}

// CSV splits a comma-separated config value, dropping empty items.
func CSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
