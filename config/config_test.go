package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
  admin_ids: [419323427, 984378370]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Survey.CatalogPath != "questions.yaml" {
		t.Errorf("catalog path = %q, want default", cfg.Survey.CatalogPath)
	}
	if cfg.Database.MaxConnections != 5 {
		t.Errorf("max connections = %d, want default 5", cfg.Database.MaxConnections)
	}
	if !cfg.Telegram.IsAdmin(419323427) {
		t.Error("expected configured id to be admin")
	}
	if cfg.Telegram.IsAdmin(1) {
		t.Error("unexpected admin")
	}
}

func TestLoadMissingToken(t *testing.T) {
	path := writeConfig(t, "telegram:\n  run_mode: longpoll\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestNormalizeRequiresAdminIDs(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty admin allow-list")
	}

	cfg.Telegram.AdminIDs = []int64{0}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for zero admin identifier")
	}

	cfg.Telegram.AdminIDs = []int64{42}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalizeWebhookValidation(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.AdminIDs = []int64{42}
	cfg.Telegram.RunMode = "webhook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url/listen/port")
	}

	cfg.Webhook.URL = "https://example.org/bot"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.AdminIDs = []int64{42}
	cfg.Telegram.RunMode = "polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want alias resolved to longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeRateLimitExclusions(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.AdminIDs = []int64{42}
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "message"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != "callback" {
		t.Errorf("exclusion not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}
