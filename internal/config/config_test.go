package config

import (
	"testing"
)

func TestGetenv(t *testing.T) {
	t.Setenv("TEST_GETENV_SET", "value")

	if v := getenv("TEST_GETENV_SET", "fallback"); v != "value" {
		t.Errorf("Expected value, got %q", v)
	}
	if v := getenv("TEST_GETENV_UNSET", "fallback"); v != "fallback" {
		t.Errorf("Expected fallback, got %q", v)
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_GETENV_INT", "42")
	t.Setenv("TEST_GETENV_INT_BAD", "not-a-number")

	if v := getenvInt("TEST_GETENV_INT", 7); v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if v := getenvInt("TEST_GETENV_INT_BAD", 7); v != 7 {
		t.Errorf("Expected default on parse failure, got %d", v)
	}
	if v := getenvInt("TEST_GETENV_INT_UNSET", 7); v != 7 {
		t.Errorf("Expected default, got %d", v)
	}
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("TEST_GETENV_BOOL", "false")
	t.Setenv("TEST_GETENV_BOOL_BAD", "maybe")

	if v := getenvBool("TEST_GETENV_BOOL", true); v != false {
		t.Errorf("Expected false, got %v", v)
	}
	if v := getenvBool("TEST_GETENV_BOOL_BAD", true); v != true {
		t.Errorf("Expected default on parse failure, got %v", v)
	}
	if v := getenvBool("TEST_GETENV_BOOL_UNSET", true); v != true {
		t.Errorf("Expected default, got %v", v)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JOURNEY_API_BASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SFTP_PORT", "")
	t.Setenv("SFTP_DIR", "")
	t.Setenv("LOG_MODE", "")

	cfg := Load()

	if cfg.APIBaseURL != "https://api.learning.example.com" {
		t.Errorf("Unexpected default base URL %q", cfg.APIBaseURL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Unexpected default redis addr %q", cfg.RedisAddr)
	}
	if cfg.SFTPPort != 22 {
		t.Errorf("Expected default SFTP port 22, got %d", cfg.SFTPPort)
	}
	if cfg.SFTPDir != "/inbound" {
		t.Errorf("Unexpected default SFTP dir %q", cfg.SFTPDir)
	}
	if cfg.LogMode != "dev" {
		t.Errorf("Expected dev log mode default, got %q", cfg.LogMode)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JOURNEY_API_BASE_URL", "https://staging.example.com")
	t.Setenv("JOURNEY_API_TOKEN", "tok-123")
	t.Setenv("JOURNEY_USER_ID", "u-1")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")

	cfg := Load()

	if cfg.APIBaseURL != "https://staging.example.com" {
		t.Errorf("Unexpected base URL %q", cfg.APIBaseURL)
	}
	if cfg.APIToken != "tok-123" {
		t.Errorf("Unexpected token %q", cfg.APIToken)
	}
	if cfg.UserID != "u-1" {
		t.Errorf("Unexpected user id %q", cfg.UserID)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("Expected redis db 3, got %d", cfg.RedisDB)
	}
	if cfg.SFTPInsecureIgnoreHostKey {
		t.Error("Expected host key checking to be enabled")
	}
}
