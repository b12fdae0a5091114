package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DOTENV_PATHS", "")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MaxRequests != 10 || c.WindowHours != 24 {
		t.Fatalf("unexpected quota policy: %d/%d", c.MaxRequests, c.WindowHours)
	}
	if c.QuotaBackend != BackendMemory {
		t.Fatalf("backend = %q", c.QuotaBackend)
	}
	if c.OmitEmptyFilters {
		t.Fatal("empty filters should be kept by default")
	}
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MAX_REQUESTS=3\nWINDOW_HOURS=2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_PATHS", path)
	t.Setenv("WINDOW_HOURS", "6")
	// godotenv sets MAX_REQUESTS for the process; restore after the test.
	t.Setenv("MAX_REQUESTS", "")
	os.Unsetenv("MAX_REQUESTS")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.MaxRequests != 3 {
		t.Fatalf("MaxRequests = %d, want 3 from .env", c.MaxRequests)
	}
	if c.WindowHours != 6 {
		t.Fatalf("WindowHours = %d, want 6 from environment", c.WindowHours)
	}
}

func TestValidate(t *testing.T) {
	base := Config{MaxRequests: 1, WindowHours: 1, QuotaBackend: BackendRedis}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero max", func(c *Config) { c.MaxRequests = 0 }},
		{"zero window", func(c *Config) { c.WindowHours = 0 }},
		{"bad backend", func(c *Config) { c.QuotaBackend = "sqlite" }},
		{"negative ttl", func(c *Config) { c.DomainCacheTTLSeconds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mut(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := Config{PostgresUser: "u", PostgresPassword: "p", PostgresHost: "h", PostgresPort: "1", PostgresDB: "d", PostgresSSLMode: "disable"}
	if got := c.PostgresDSN(); got != "postgres://u:p@h:1/d?sslmode=disable" {
		t.Fatalf("dsn = %q", got)
	}
	c.PostgresURL = "postgres://x"
	if got := c.PostgresDSN(); got != "postgres://x" {
		t.Fatalf("dsn = %q", got)
	}
}
