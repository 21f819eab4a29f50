package config

import (
	"testing"
	"time"
)

func TestParseLifetime(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", DefaultTokenLifetime},
		{"2592000", 30 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
	}
	for _, c := range cases {
		got, err := parseLifetime(c.raw)
		if err != nil {
			t.Fatalf("parseLifetime(%q) error: %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("parseLifetime(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
	for _, bad := range []string{"-5", "0", "soon"} {
		if _, err := parseLifetime(bad); err == nil {
			t.Errorf("parseLifetime(%q) expected error", bad)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CEREBRAS_API_KEY", " key-123 ")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES", "3600")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("DB_HOST", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.ProviderConfigured() || cfg.ProviderAPIKey != "key-123" {
		t.Errorf("expected trimmed provider key, got %q", cfg.ProviderAPIKey)
	}
	if cfg.TokenLifetime != time.Hour {
		t.Errorf("expected 1h token lifetime, got %s", cfg.TokenLifetime)
	}
	if cfg.SupabaseURL != "https://example.supabase.co" || !cfg.SupabaseEnabled() {
		t.Errorf("unexpected supabase config: %q", cfg.SupabaseURL)
	}
	if cfg.UsesPostgres() {
		t.Errorf("expected sqlite when no postgres target is set")
	}
	if cfg.Port != "5000" || cfg.DBPath != "zara.db" {
		t.Errorf("unexpected defaults: port=%q db=%q", cfg.Port, cfg.DBPath)
	}
	if cfg.ProviderTimeout != 60*time.Second {
		t.Errorf("unexpected provider timeout %s", cfg.ProviderTimeout)
	}
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "forever")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid PROVIDER_TIMEOUT")
	}
}

func TestDefaultPersona(t *testing.T) {
	p, err := LoadPersona("")
	if err != nil {
		t.Fatalf("LoadPersona: %v", err)
	}
	if p.Name != "Zara" {
		t.Errorf("expected Zara, got %q", p.Name)
	}
	if len(p.Models) != 1 || p.Models[0] != "llama3.1-8b" {
		t.Errorf("unexpected models %v", p.Models)
	}
	if p.Sampling.Temperature != 0.7 || p.Sampling.MaxTokens != 4096 || p.Sampling.TopP != 1 {
		t.Errorf("unexpected sampling %+v", p.Sampling)
	}
	if p.SystemPrompt == "" {
		t.Error("expected a system prompt")
	}
}

func TestParsePersonaValidation(t *testing.T) {
	if _, err := ParsePersona([]byte("system_prompt: hi\nmodels: []\n")); err == nil {
		t.Error("expected error without models")
	}
	if _, err := ParsePersona([]byte("models: [a]\n")); err == nil {
		t.Error("expected error without prompt")
	}
	p, err := ParsePersona([]byte("system_prompt: hi\nmodels: [' a ', '', b]\n"))
	if err != nil {
		t.Fatalf("ParsePersona: %v", err)
	}
	if len(p.Models) != 2 || p.Models[0] != "a" || p.Models[1] != "b" {
		t.Errorf("unexpected models %v", p.Models)
	}
	if p.Sampling.MaxTokens != 4096 {
		t.Errorf("expected default max tokens, got %d", p.Sampling.MaxTokens)
	}
}
