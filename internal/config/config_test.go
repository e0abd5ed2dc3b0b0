package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AI_APIKEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.UIPort != "8081" {
		t.Errorf("Server.UIPort = %q, want 8081", cfg.Server.UIPort)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("AI.Model = %q, want gpt-4o-mini", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 120*time.Second {
		t.Errorf("AI.Timeout = %v, want 120s", cfg.AI.Timeout)
	}
	if !cfg.AI.FallbackToHeuristic {
		t.Error("AI.FallbackToHeuristic should default to true")
	}
	if cfg.Plan.DeficitStrategy != "least_aggressive" {
		t.Errorf("Plan.DeficitStrategy = %q, want least_aggressive", cfg.Plan.DeficitStrategy)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %q, want empty without env", cfg.Database.URL)
	}
	if cfg.AI.APIKey != "" {
		t.Errorf("AI.APIKey = %q, want empty without env", cfg.AI.APIKey)
	}
}

// TestLoadEnvOverrides covers the env-only keys alongside a defaulted one.
// DATABASE_URL and AI_APIKEY have no file-side default value, so they must
// still be visible to the env layer.
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/fitcoach?sslmode=disable")
	t.Setenv("AI_APIKEY", "sk-test-123")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PLAN_DEFICITSTRATEGY", "proportional")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.URL != "postgres://localhost:5432/fitcoach?sslmode=disable" {
		t.Errorf("Database.URL = %q, want env value", cfg.Database.URL)
	}
	if cfg.AI.APIKey != "sk-test-123" {
		t.Errorf("AI.APIKey = %q, want env value", cfg.AI.APIKey)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Plan.DeficitStrategy != "proportional" {
		t.Errorf("Plan.DeficitStrategy = %q, want proportional", cfg.Plan.DeficitStrategy)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		requireAI bool
		requireDB bool
		wantErr   bool
	}{
		{"nothing required", Config{}, false, false, false},
		{"ai required and missing", Config{}, true, false, true},
		{"db required and missing", Config{}, false, true, true},
		{
			"ai required and present",
			Config{AI: AIConfig{APIKey: "sk-test"}},
			true, false, false,
		},
		{
			"db required and present",
			Config{Database: DatabaseConfig{URL: "postgres://localhost/fitcoach"}},
			false, true, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.requireAI, tt.requireDB)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%v, %v) error = %v, wantErr %v",
					tt.requireAI, tt.requireDB, err, tt.wantErr)
			}
		})
	}
}
