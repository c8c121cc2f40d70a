package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("AUTHORITY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Authority != "reference" {
		t.Errorf("expected default authority 'reference', got %s", cfg.Authority)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.DBMaxConns)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected database to be optional, got %s", cfg.DatabaseURL)
	}
}

func TestLoad_APIKeysFromEnv(t *testing.T) {
	os.Setenv("API_KEYS", "key-one,key-two")
	defer os.Unsetenv("API_KEYS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.APIKeys) != 2 {
		t.Fatalf("expected 2 api keys, got %d", len(cfg.APIKeys))
	}
	if cfg.APIKeys[0] != "key-one" || cfg.APIKeys[1] != "key-two" {
		t.Errorf("unexpected api keys: %v", cfg.APIKeys)
	}
}

func TestValidate_AuthorityModes(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"reference", Config{Authority: "reference"}, false},
		{"off", Config{Authority: "off"}, false},
		{"openai with key", Config{Authority: "openai", OpenAIAPIKey: "sk-test"}, false},
		{"openai without key", Config{Authority: "openai"}, true},
		{"unknown", Config{Authority: "oracle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ProductionRequiresAPIKeys(t *testing.T) {
	c := Config{Env: "production", Authority: "reference"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for production without API keys")
	}
	c.APIKeys = []string{"key"}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_VerifyTimeout(t *testing.T) {
	c := &Config{}
	if c.VerifyTimeout() != 0 {
		t.Error("expected zero timeout when unset")
	}
	c.VerifyTimeoutMS = 2500
	if got := c.VerifyTimeout().Milliseconds(); got != 2500 {
		t.Errorf("expected 2500ms, got %d", got)
	}
}
