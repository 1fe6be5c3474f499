// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "file:drtally.db")
	os.Setenv("SESSION_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DefaultAdminCredentials(t *testing.T) {
	os.Setenv("DATABASE_URL", "file:test.db")
	os.Setenv("SESSION_SALT", "s1")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.AdminUsername != "admin" || cfg.AdminPassword != "admin" {
		t.Errorf("expected admin/admin defaults, got %s/%s", cfg.AdminUsername, cfg.AdminPassword)
	}
}

func TestParseFlags_RequiredSettings(t *testing.T) {
	os.Clearenv()

	// Missing database URL
	if _, err := ParseFlags([]string{"-session-salt", "s1"}); err == nil {
		t.Error("expected error when database URL is missing")
	}

	// Missing session salt
	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error when SESSION_SALT is missing")
	}
}

func TestParseFlags_RejectsUnknownDatabaseType(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-t", "oracle", "-session-salt", "s1"})
	if err == nil {
		t.Error("expected error for unsupported database type")
	}
}
