package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Database.DSN == "" && c.Database.AutoMigrate {
		return fmt.Errorf("database.auto_migrate requires database.dsn")
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.ReadMode = strings.ToLower(strings.TrimSpace(s.ReadMode))
	switch s.ReadMode {
	case ReadModeDurable, ReadModeDurableNonEmpty, ReadModeMirror:
	default:
		return fmt.Errorf("read_mode must be one of %s, %s, %s (got %q)",
			ReadModeDurable, ReadModeDurableNonEmpty, ReadModeMirror, s.ReadMode)
	}

	if s.DurableTimeout <= 0 {
		return fmt.Errorf("durable_timeout must be > 0 (got %s)", s.DurableTimeout)
	}

	if s.SnapshotPath != "" && strings.TrimSpace(s.SnapshotKey) == "" {
		return fmt.Errorf("snapshot_key is required when snapshot_path is set")
	}

	return nil
}
