package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anthropic-types.yaml")
	if err := os.WriteFile(path, []byte("kind: response\noutput: yaml\nconcurrency: 8\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := LoadFile(&cfg, path, true); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"ANTHROPIC_TYPES_OUTPUT": "json",
		"ANTHROPIC_TYPES_COLOR":  "never",
		"ANTHROPIC_TYPES_PRETTY": "true",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	want := Config{
		Kind:        KindResponse,
		Output:      OutputJSON,
		Color:       ColorNever,
		Concurrency: 8,
		Pretty:      true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	cfg := Default()
	if err := LoadFile(&cfg, missing, false); err != nil {
		t.Errorf("implicit missing file returned error: %v", err)
	}
	if err := LoadFile(&cfg, missing, true); err == nil {
		t.Error("explicit missing file returned no error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ANTHROPIC_TYPES_KIND=message\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("ANTHROPIC_TYPES_KIND", "")
	os.Unsetenv("ANTHROPIC_TYPES_KIND")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Kind != KindMessage {
		t.Errorf("Kind = %q, want message", cfg.Kind)
	}
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	if err := ApplyEnv(&cfg, mapLookup(map[string]string{"ANTHROPIC_TYPES_CONCURRENCY": "many"})); err == nil {
		t.Error("expected error for non-numeric concurrency")
	}
	if err := ApplyEnv(&cfg, mapLookup(map[string]string{"ANTHROPIC_TYPES_PRETTY": "sometimes"})); err == nil {
		t.Error("expected error for non-boolean pretty")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"kind", func(c *Config) { c.Kind = "tool" }},
		{"output", func(c *Config) { c.Output = "xml" }},
		{"color", func(c *Config) { c.Color = "sometimes" }},
		{"concurrency", func(c *Config) { c.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("Request"); err == nil {
		t.Error("ParseKind accepted a differently cased kind")
	}
}
