package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "data:\n  dir: testdata\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", c.Server.Port)
	}
	if c.Analysis.Window != 3 || c.Analysis.StressWindow != 12 {
		t.Fatalf("unexpected analysis defaults: %+v", c.Analysis)
	}
	if c.Data.Dir != "testdata" {
		t.Fatalf("expected data dir override, got %q", c.Data.Dir)
	}
}

func TestLoadExplicitFalseSurvives(t *testing.T) {
	path := writeConfig(t, "metrics:\n  enabled: false\ndata:\n  dir: testdata\n  watch_files: false\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Metrics.Enabled {
		t.Fatal("metrics.enabled: false was overwritten by the default")
	}
	if c.Data.WatchFiles {
		t.Fatal("data.watch_files: false was overwritten by the default")
	}
	// untouched bool defaults still apply
	d, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if !d.Metrics.Enabled || !d.Data.WatchFiles {
		t.Fatalf("unexpected bool defaults: %+v %+v", d.Metrics, d.Data)
	}
}

func TestLoadInvalidCacheBackend(t *testing.T) {
	path := writeConfig(t, "cache:\n  backend: memcached\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadInvalidInflationBand(t *testing.T) {
	path := writeConfig(t, "analysis:\n  inflation_low: 9\n  inflation_high: 8\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadWithEnv(t *testing.T) {
	path := writeConfig(t, "data:\n  dir: from-file\n")
	t.Setenv("MACROGAUGE_DATA_DIR", "from-env")
	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Data.Dir != "from-env" {
		t.Fatalf("expected env override, got %q", c.Data.Dir)
	}
}
