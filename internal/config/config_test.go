package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
	if cfg.BaseURL != "https://race.netkeiba.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.APIURL != "https://race.netkeiba.com/api/api_get_jra_odds.html" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.UserAgent == "" || cfg.AcceptLanguage == "" {
		t.Error("UserAgent and AcceptLanguage should have defaults")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timeout: 5s\nuser_agent: test-agent\nbase_url: http://localhost:8080\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	// Unset fields keep their defaults.
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KEIBA_TIMEOUT", "7s")
	t.Setenv("KEIBA_BASE_URL", "http://localhost:9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", cfg.Timeout)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadBadTimeoutEnv(t *testing.T) {
	t.Setenv("KEIBA_TIMEOUT", "not-a-duration")
	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid KEIBA_TIMEOUT")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
