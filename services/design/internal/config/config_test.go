package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRequiresProviderKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, "port: \"8080\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected startup error when OPENAI_API_KEY is absent")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("QUOTA_REDIS_ADDR", "localhost:6379")
	t.Setenv("DESIGN_DAILY_LIMIT", "5")
	path := writeConfig(t, `
port: "8080"
logLevel: "debug"
artifactTTL: "12h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Fatalf("provider = %q, want openai default", cfg.Provider)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("api key not taken from environment")
	}
	if cfg.QuotaRedisAddr != "localhost:6379" {
		t.Fatalf("quotaRedisAddr = %q, want env override", cfg.QuotaRedisAddr)
	}
	if cfg.DailyLimit != 5 {
		t.Fatalf("dailyLimit = %d, want 5", cfg.DailyLimit)
	}
	ttl, err := ParseArtifactTTL(cfg.ArtifactTTL)
	if err != nil {
		t.Fatalf("parse ttl: %v", err)
	}
	if ttl != 12*time.Hour {
		t.Fatalf("ttl = %v, want 12h", ttl)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeConfig(t, "port: \"8080\"\nprovider: \"dalle\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestLoadRejectsIncompleteMinio(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeConfig(t, `
port: "8080"
minioEndpoint: "localhost:9000"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for minio endpoint without credentials")
	}
}

func TestParseArtifactTTLNeverEvictByDefault(t *testing.T) {
	ttl, err := ParseArtifactTTL("")
	if err != nil || ttl != 0 {
		t.Fatalf("ttl = %v err = %v, want 0 and nil", ttl, err)
	}
}
