package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BREWLOG_DATA_DIR", "BREWLOG_HTTP_ADDR", "BREWLOG_SLOT_COUNT"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name          string
		env           map[string]string
		wantErr       bool
		wantHTTPAddr  string
		wantSlotCount int
	}{
		{
			name:          "Defaults",
			env:           map[string]string{"BREWLOG_DATA_DIR": "/var/lib/brewlog"},
			wantHTTPAddr:  ":8080",
			wantSlotCount: 5,
		},
		{
			name: "Custom",
			env: map[string]string{
				"BREWLOG_DATA_DIR":   "/tmp/cellar",
				"BREWLOG_HTTP_ADDR":  ":3000",
				"BREWLOG_SLOT_COUNT": "8",
			},
			wantHTTPAddr:  ":3000",
			wantSlotCount: 8,
		},
		{
			name:    "BadSlotCount",
			env:     map[string]string{"BREWLOG_DATA_DIR": "/tmp/cellar", "BREWLOG_SLOT_COUNT": "zero"},
			wantErr: true,
		},
		{
			name:    "NegativeSlotCount",
			env:     map[string]string{"BREWLOG_DATA_DIR": "/tmp/cellar", "BREWLOG_SLOT_COUNT": "-2"},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.DataDir != tc.env["BREWLOG_DATA_DIR"] {
				t.Errorf("DataDir = %q, want %q", cfg.DataDir, tc.env["BREWLOG_DATA_DIR"])
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.SlotCount != tc.wantSlotCount {
				t.Errorf("SlotCount = %d, want %d", cfg.SlotCount, tc.wantSlotCount)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	c := &Config{DataDir: "/data"}
	if got := c.SlotsPath(); got != filepath.Join("/data", "fermenter_data.json") {
		t.Errorf("SlotsPath = %q", got)
	}
	if got := c.ArchivePath(); got != filepath.Join("/data", "brew_history.json") {
		t.Errorf("ArchivePath = %q", got)
	}
}

func TestLoadBrewConfig_Missing(t *testing.T) {
	cfg, err := LoadBrewConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if len(cfg.Categories) == 0 || cfg.Categories[0] != "Beer" {
		t.Errorf("defaults not applied: %+v", cfg.Categories)
	}
}

func TestLoadBrewConfig_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brew_config.json")
	body := `{"CATEGORIES": ["Sake", "Beer"], "LOCAL_TIMEZONE": "Europe/Berlin"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBrewConfig(path)
	if err != nil {
		t.Fatalf("LoadBrewConfig: %v", err)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "Sake" {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if cfg.LocalTimezone != "Europe/Berlin" {
		t.Errorf("LocalTimezone = %q", cfg.LocalTimezone)
	}
	// Untouched keys keep their defaults.
	if len(cfg.Stages) == 0 || cfg.Stages[0] != "Primary" {
		t.Errorf("Stages = %v", cfg.Stages)
	}
}

func TestLoadBrewConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brew_config.json")
	if err := os.WriteFile(path, []byte(`{"CATEGORIES": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBrewConfig(path); err == nil {
		t.Fatal("empty category list must be rejected")
	}

	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBrewConfig(path); err == nil {
		t.Fatal("malformed JSON must be rejected")
	}
}
