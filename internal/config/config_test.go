package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "3001")
	t.Setenv("DB_DRIVER", "postgres")

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3001 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.JWT.TTL != 720*time.Hour {
		t.Errorf("JWT.TTL = %v", cfg.JWT.TTL)
	}
	if !cfg.CORS.AllowAll {
		t.Error("development should accept any origin")
	}
	if cfg.IsProduction() {
		t.Error("development reported as production")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "  ")

	_, err := Load(missingEnvFile(t))
	if !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")

	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DB_NAME=blog_from_file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Name != "blog_from_file" {
		t.Fatalf("DB.Name = %q", cfg.DB.Name)
	}
}

func TestAllowedOrigins(t *testing.T) {
	allowAll, origins := allowedOrigins(EnvProduction, " https://blog.example.com ,,https://www.blog.example.com")
	if allowAll {
		t.Fatal("production must not accept any origin")
	}
	if len(origins) != 2 || origins[0] != "https://blog.example.com" {
		t.Fatalf("origins = %v", origins)
	}

	_, origins = allowedOrigins(EnvTest, "https://staging.example.com")
	if len(origins) != len(devOrigins)+1 {
		t.Fatalf("test origins = %v", origins)
	}
}
