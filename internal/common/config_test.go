package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Clients.FMP.BaseURL != "https://financialmodelingprep.com/api/v3" {
		t.Errorf("FMP.BaseURL default = %q", cfg.Clients.FMP.BaseURL)
	}
	if cfg.Auth.ActionKey != "" {
		t.Errorf("Auth.ActionKey default = %q, want empty (open mode)", cfg.Auth.ActionKey)
	}
	if cfg.Cache.MaxItems != 1000 {
		t.Errorf("Cache.MaxItems default = %d, want 1000", cfg.Cache.MaxItems)
	}
}

func TestConfig_CacheTTLDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if got := cfg.Cache.GetPriceTTL(); got != 60*time.Second {
		t.Errorf("price TTL = %v, want 60s", got)
	}
	if got := cfg.Cache.GetNewsTTL(); got != 5*time.Minute {
		t.Errorf("news TTL = %v, want 5m", got)
	}
	if got := cfg.Cache.GetFundamentalsTTL(); got != 30*time.Minute {
		t.Errorf("fundamentals TTL = %v, want 30m", got)
	}
}

func TestConfig_InvalidTTLFallsBack(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Cache.PriceTTL = "not-a-duration"
	if got := cfg.Cache.GetPriceTTL(); got != 60*time.Second {
		t.Errorf("price TTL = %v after bad value, want 60s fallback", got)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FINSIGHT_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_FMPKeyEnvOverride(t *testing.T) {
	t.Setenv("FMP_API_KEY", "from-env")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.FMP.APIKey != "from-env" {
		t.Errorf("FMP.APIKey = %q, want %q", cfg.Clients.FMP.APIKey, "from-env")
	}
}

func TestConfig_GeminiKeyGoogleEnvFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-fallback")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Clients.Gemini.APIKey != "google-fallback" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Clients.Gemini.APIKey, "google-fallback")
	}
}

func TestConfig_ActionKeyEnvOverride(t *testing.T) {
	t.Setenv("ACTION_KEY", "secret-token")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.ActionKey != "secret-token" {
		t.Errorf("Auth.ActionKey = %q, want %q", cfg.Auth.ActionKey, "secret-token")
	}
}

func TestConfig_CORSOriginsEnvOverride(t *testing.T) {
	t.Setenv("FINSIGHT_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsight.toml")
	content := `
environment = "production"

[server]
port = 9000

[clients.fmp]
api_key = "file-key"

[cache]
fundamentals_ttl = "1h"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Clients.FMP.APIKey != "file-key" {
		t.Errorf("FMP.APIKey = %q, want file-key", cfg.Clients.FMP.APIKey)
	}
	if got := cfg.Cache.GetFundamentalsTTL(); got != time.Hour {
		t.Errorf("fundamentals TTL = %v, want 1h", got)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}
