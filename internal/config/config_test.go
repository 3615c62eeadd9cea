package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	// Ensure envs are clean to use defaults
	os.Unsetenv("DB_PATH")
	os.Unsetenv("HTTP_ADDRESS")
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("TOKEN_TTL_HOURS")
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.HTTP.Address == "" || cfg.Database.Path == "" || cfg.Storage.DataDir == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected default TTL: %v", cfg.Auth.TokenTTL)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	// Clear JWT_SECRET ensures error
	os.Unsetenv("JWT_SECRET")
	// Other vars can be set or default
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("HTTP_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	// When set, it should succeed
	t.Setenv("JWT_SECRET", "x")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
}

func TestLoad_TokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("TTL not applied: %v", cfg.Auth.TokenTTL)
	}

	t.Setenv("TOKEN_TTL_HOURS", "nope")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-integer TTL")
	}

	t.Setenv("TOKEN_TTL_HOURS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive TTL")
	}
}

func TestScopePaths(t *testing.T) {
	s := StorageConfig{DataDir: "data"}
	if got := s.UserBooksPath(); got != "data/user.book.csv" {
		t.Fatalf("user path: %s", got)
	}
	if got := s.AdminBooksPath(); got != "data/admin.book.csv" {
		t.Fatalf("admin path: %s", got)
	}
}
