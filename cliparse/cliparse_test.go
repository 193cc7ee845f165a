// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/nft-contest/pda"
)

// noEnvFile keeps a stray .env in the package directory out of the tests.
var noEnvFile = []string{"--env-file", "does-not-exist.env"}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "PROGRAM_ID", "METRICS_ENABLED", "VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags(noEnvFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultSQLitePath {
		t.Errorf("expected %q, got %q", DefaultSQLitePath, cfg.DatabaseURL)
	}
	if !cfg.ProgramID.Equals(pda.DefaultProgramID) {
		t.Errorf("expected default program id, got %s", cfg.ProgramID)
	}
	if !cfg.MetricsEnabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Verbose {
		t.Error("verbose should be off by default")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("PROGRAM_ID", "11111111111111111111111111111111")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := ParseFlags(noEnvFile)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.ProgramID.String() != "11111111111111111111111111111111" {
		t.Errorf("unexpected program id %s", cfg.ProgramID)
	}
	if cfg.MetricsEnabled {
		t.Error("METRICS_ENABLED=false should disable metrics")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "env.db")

	args := append([]string{"-p", "8080", "--database-url", "cli.db", "--verbose"}, noEnvFile...)
	cfg, err := ParseFlags(args)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "cli.db" {
		t.Errorf("CLI should override env: expected cli.db, got %q", cfg.DatabaseURL)
	}
	if !cfg.Verbose {
		t.Error("--verbose should enable debug logging")
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() { os.Unsetenv("PORT") })

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=7001\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"--env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 7001 {
		t.Errorf("expected port from env file, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"unknown database type", []string{"-t", "mysql"}, nil},
		{"bad port env", nil, map[string]string{"PORT": "abc"}},
		{"bad program id", []string{"--program-id", "not-base58!"}, nil},
		{"bad metrics env", nil, map[string]string{"METRICS_ENABLED": "sometimes"}},
		{"unknown flag", []string{"--admin-salt", "x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(append(tt.args, noEnvFile...)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
