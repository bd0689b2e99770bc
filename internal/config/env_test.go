package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"TRILEPTON_WORKERS", "TRILEPTON_DB"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if e.Workers != 1 {
		t.Errorf("expected default workers 1, got %d", e.Workers)
	}
	if e.DBPath != "" {
		t.Errorf("expected empty db path, got %q", e.DBPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRILEPTON_WORKERS", "4")
	t.Setenv("TRILEPTON_DB", "/tmp/runs.db")
	t.Setenv("TRILEPTON_PLOTS_DIR", "/tmp/plots")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if e.Workers != 4 || e.DBPath != "/tmp/runs.db" || e.PlotsDir != "/tmp/plots" {
		t.Errorf("unexpected env %+v", e)
	}
}

func TestLoadEnvErrors(t *testing.T) {
	t.Setenv("TRILEPTON_WORKERS", "many")
	_, err := LoadEnv()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}

	t.Setenv("TRILEPTON_WORKERS", "0")
	if _, err := LoadEnv(); err == nil {
		t.Fatal("expected error for zero workers")
	}
}
