package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Analysis.MaxConcurrentAnalyses != 10 {
		t.Errorf("Expected default concurrency 10, got %d", cfg.Analysis.MaxConcurrentAnalyses)
	}
	if !cfg.Analysis.IncludeRiskByDefault {
		t.Error("Expected risk screening on by default")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9090\nanalysis:\n  max_batch_size: 25\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090 from file, got %d", cfg.Server.Port)
	}
	if cfg.Analysis.MaxBatchSize != 25 {
		t.Errorf("Expected batch size 25 from file, got %d", cfg.Analysis.MaxBatchSize)
	}
	// Untouched values keep their defaults.
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEXTCLINIC_SERVER_PORT", "7070")
	t.Setenv("TEXTCLINIC_LOGGING_LEVEL", "debug")
	t.Setenv("TEXTCLINIC_ANALYSIS_DEFAULT_TIMEOUT", "45s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Analysis.DefaultTimeout != 45*time.Second {
		t.Errorf("Expected env timeout 45s, got %s", cfg.Analysis.DefaultTimeout)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("TEXTCLINIC_SERVER_PORT", "70000")
	if _, err := Load(""); err == nil {
		t.Error("Expected error for out-of-range port")
	}
}

func TestLoadFromFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
