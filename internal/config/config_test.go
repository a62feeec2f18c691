package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeHonorsOverride(t *testing.T) {
	t.Setenv("TROVE_HOME", "/tmp/trove-test")

	home, err := Home()
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if home != "/tmp/trove-test" {
		t.Errorf("expected /tmp/trove-test, got %s", home)
	}
}

func TestHomeDefaultsUnderUserHome(t *testing.T) {
	t.Setenv("TROVE_HOME", "")

	home, err := Home()
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	userHome, _ := os.UserHomeDir()
	expected := filepath.Join(userHome, ".trove")
	if home != expected {
		t.Errorf("expected %s, got %s", expected, home)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage != StorageJSON {
		t.Errorf("expected default storage %s, got %s", StorageJSON, cfg.Storage)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	saved := &Config{Version: "1", Storage: StorageSQLite, DataDir: "/var/trove"}
	if err := SaveConfig(dir, saved); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("expected storage %s, got %s", StorageSQLite, cfg.Storage)
	}
	if cfg.DataDir != "/var/trove" {
		t.Errorf("expected data dir /var/trove, got %s", cfg.DataDir)
	}
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for unparseable config")
	}
}

func TestLoadConfigFillsEmptyStorage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"version":"1"}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage != StorageJSON {
		t.Errorf("expected storage %s, got %s", StorageJSON, cfg.Storage)
	}
}

func TestIsValidStorage(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"json backend", StorageJSON, true},
		{"sqlite backend", StorageSQLite, true},
		{"unknown backend", "postgres", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidStorage(tt.value); got != tt.want {
				t.Errorf("IsValidStorage(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDataDirPath(t *testing.T) {
	cfg := &Config{}
	if got := cfg.DataDirPath("/home/u/.trove"); got != filepath.Join("/home/u/.trove", "data") {
		t.Errorf("default data dir = %s", got)
	}

	cfg.DataDir = "/elsewhere"
	if got := cfg.DataDirPath("/home/u/.trove"); got != "/elsewhere" {
		t.Errorf("override data dir = %s", got)
	}
}
