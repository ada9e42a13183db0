package config

import (
	"fmt"
	"strings"

	"github.com/cours-de-latin/scansion"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Scan.validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	return nil
}

func (s *ScanConfig) validate() error {
	if _, ok := scansion.DefaultValidator().Meter(s.Meter); !ok {
		return fmt.Errorf("meter: %w: %q", scansion.ErrUnknownMeter, s.Meter)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", s.Workers)
	}
	if s.MaxLines <= 0 {
		return fmt.Errorf("max_lines must be > 0 (got %d)", s.MaxLines)
	}
	return nil
}
