package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2
  auto_migrate: true

storage:
  read_mode: "durable_nonempty"
  durable_timeout: "750ms"
  strict_aggregates: false
  snapshot_path: "/tmp/fms/mirror.json"
  snapshot_key: "fms-test"
  seed_on_start: true

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

log:
  level: "debug"
  format: "text"

rate_limit:
  requests_per_minute: 120
`

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 8080},
		Storage:   StorageConfig{ReadMode: ReadModeDurable, DurableTimeout: time.Second, StrictAggregates: true, SnapshotKey: "fms-data"},
		Log:       LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{RequestsPerMinute: 60},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should be true")
	}

	// Storage
	if cfg.Storage.ReadMode != ReadModeDurableNonEmpty {
		t.Errorf("storage.read_mode = %q", cfg.Storage.ReadMode)
	}
	if cfg.Storage.DurableTimeout != 750*time.Millisecond {
		t.Errorf("storage.durable_timeout = %v, want 750ms", cfg.Storage.DurableTimeout)
	}
	if cfg.Storage.StrictAggregates {
		t.Error("storage.strict_aggregates should be false")
	}
	if cfg.Storage.SnapshotPath != "/tmp/fms/mirror.json" || cfg.Storage.SnapshotKey != "fms-test" {
		t.Errorf("storage snapshot = %q %q", cfg.Storage.SnapshotPath, cfg.Storage.SnapshotKey)
	}
	if !cfg.Storage.SeedOnStart {
		t.Error("storage.seed_on_start should be true")
	}

	// Auth
	if !cfg.Auth.Enabled() {
		t.Error("auth should be enabled with a secret")
	}
	if cfg.Auth.JWTIssuer != "fms" {
		t.Errorf("auth.jwt_issuer = %q, want default %q", cfg.Auth.JWTIssuer, "fms")
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Rate limit
	if cfg.RateLimit.RequestsPerMinute != 120 {
		t.Errorf("rate_limit.requests_per_minute = %d, want 120", cfg.RateLimit.RequestsPerMinute)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORAGE_READ_MODE", "mirror")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Storage.ReadMode != ReadModeMirror {
		t.Errorf("storage.read_mode = %q, want %q (ENV override)", cfg.Storage.ReadMode, ReadModeMirror)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("database.dsn = %q, want empty (mirror only)", cfg.Database.DSN)
	}
	if cfg.Storage.ReadMode != ReadModeDurable {
		t.Errorf("storage.read_mode = %q, want %q", cfg.Storage.ReadMode, ReadModeDurable)
	}
	if cfg.Storage.DurableTimeout != 3*time.Second {
		t.Errorf("storage.durable_timeout = %v, want 3s", cfg.Storage.DurableTimeout)
	}
	if !cfg.Storage.StrictAggregates {
		t.Error("storage.strict_aggregates should default to true")
	}
	if cfg.Auth.Enabled() {
		t.Error("auth should be disabled without a secret")
	}
}

func TestLoad_ProjectEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv(envConfig, path)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoad_SearchesConfigsDir(t *testing.T) {
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", "")
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "fms.yaml"), []byte(validYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.SnapshotKey != "fms-test" {
		t.Errorf("storage.snapshot_key = %q, want %q", cfg.Storage.SnapshotKey, "fms-test")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv(envConfig, "")
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "jwt secret too short", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "jwt secret long enough", mutate: func(c *Config) { c.Auth.JWTSecret = "0123456789abcdef0123456789abcdef" }},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown read mode", mutate: func(c *Config) { c.Storage.ReadMode = "sometimes" }, wantErr: true},
		{name: "read mode case insensitive", mutate: func(c *Config) { c.Storage.ReadMode = " Mirror " }},
		{name: "zero durable timeout", mutate: func(c *Config) { c.Storage.DurableTimeout = 0 }, wantErr: true},
		{name: "snapshot path without key", mutate: func(c *Config) {
			c.Storage.SnapshotPath = "/tmp/x.json"
			c.Storage.SnapshotKey = " "
		}, wantErr: true},
		{name: "auto migrate without dsn", mutate: func(c *Config) { c.Database.AutoMigrate = true }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
