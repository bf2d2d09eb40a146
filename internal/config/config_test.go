package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgDir := filepath.Join(dir, "kotoba")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return cfgDir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Study.SessionSize != 10 || cfg.Study.NewItemCap != 5 || cfg.Study.GradeTiers != 2 {
		t.Errorf("study defaults = %+v", cfg.Study)
	}
	if cfg.Sync.URL != "" || cfg.LLM.Provider != "" {
		t.Errorf("optional sections should default empty: %+v %+v", cfg.Sync, cfg.LLM)
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	cfgDir := withConfigHome(t)
	yaml := []byte("study:\n  session_size: 20\n  grade_tiers: 4\nsync:\n  url: https://sync.example.com\n  token: abc\n")
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Study.SessionSize != 20 || cfg.Study.GradeTiers != 4 {
		t.Errorf("study = %+v", cfg.Study)
	}
	if cfg.Sync.URL != "https://sync.example.com" || cfg.Sync.Token != "abc" {
		t.Errorf("sync = %+v", cfg.Sync)
	}
	if cfg.Study.NewItemCap != 5 {
		t.Errorf("unset field should keep default, got %d", cfg.Study.NewItemCap)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgDir := withConfigHome(t)
	yaml := []byte("study:\n  session_size: 20\n")
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KOTOBA_STUDY_SESSION_SIZE", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Study.SessionSize != 5 {
		t.Errorf("session size = %d, want env override 5", cfg.Study.SessionSize)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cfgDir := withConfigHome(t)
	cases := []string{
		"study:\n  session_size: 7\n",
		"study:\n  grade_tiers: 3\n",
		"llm:\n  provider: watson\n",
		"sync:\n  url: not-a-url\n",
	}
	for _, yaml := range cases {
		if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(); err == nil {
			t.Errorf("config %q should fail validation", yaml)
		}
	}
}
