package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/soar/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, DefaultOutput)
	}
	if cfg.Render.ScopeAttr != "scope" {
		t.Errorf("Render.ScopeAttr = %q, want %q", cfg.Render.ScopeAttr, "scope")
	}
	if cfg.Render.HashLength != DefaultHashLength {
		t.Errorf("Render.HashLength = %d, want %d", cfg.Render.HashLength, DefaultHashLength)
	}
	if !cfg.CSS.Minify {
		t.Error("CSS.Minify should default to true")
	}
	if len(cfg.CSS.Targets) == 0 {
		t.Error("CSS.Targets should have defaults")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E141") {
		t.Errorf("Expected E141 for missing config, got %v", err)
	}

	// Create a config file
	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "docs",
  "render": {
    "hashLength": 8
  },
  "css": {
    "targets": ["chrome120"],
    "minify": false
  },
  "dev": {
    "port": 8080,
    "host": "0.0.0.0"
  },
  "build": {
    "output": "build"
  },
  "publish": {
    "bucket": "docs-site",
    "prefix": "v1/"
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	// Load the config
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "docs" {
		t.Errorf("Name = %q, want %q", cfg.Name, "docs")
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, 8080)
	}
	if cfg.Dev.Host != "0.0.0.0" {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, "0.0.0.0")
	}
	if cfg.Build.Output != "build" {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, "build")
	}
	if cfg.Render.HashLength != 8 {
		t.Errorf("Render.HashLength = %d, want 8", cfg.Render.HashLength)
	}
	if cfg.Render.ScopeAttr != "scope" {
		t.Errorf("Render.ScopeAttr default not applied: %q", cfg.Render.ScopeAttr)
	}
	if cfg.CSS.Minify {
		t.Error("CSS.Minify should be false")
	}
	if len(cfg.CSS.Targets) != 1 || cfg.CSS.Targets[0] != "chrome120" {
		t.Errorf("CSS.Targets = %v", cfg.CSS.Targets)
	}
	if cfg.Publish.Bucket != "docs-site" || cfg.Publish.Prefix != "v1/" {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `name: blog
render:
  scopeAttr: data-s
dev:
  port: 4000
css:
  minify: true
  targets:
    - firefox115
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "blog" || cfg.Render.ScopeAttr != "data-s" || cfg.Dev.Port != 4000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Render.HashLength != DefaultHashLength {
		t.Errorf("Render.HashLength = %d, want default", cfg.Render.HashLength)
	}
	if len(cfg.CSS.Targets) != 1 || cfg.CSS.Targets[0] != "firefox115" {
		t.Errorf("CSS.Targets = %v", cfg.CSS.Targets)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"name": "json"}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte("name: yaml\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", ConfigFileName, "not valid json"},
		{"yaml", YAMLConfigFileName, "render: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("Expected error for invalid file")
			}
			if !strings.Contains(err.Error(), "E120") {
				t.Errorf("Expected E120 error, got: %v", err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			cfg := New()
			cfg.Dev.Port = 9000
			cfg.CSS.Minify = false

			// Save should fail without configPath set
			if err := cfg.Save(); err == nil {
				t.Error("Expected error when saving without path")
			}

			if err := cfg.SaveTo(configPath); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}

			loaded, err := LoadFile(configPath)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if loaded.Dev.Port != 9000 {
				t.Errorf("Dev.Port = %d, want %d", loaded.Dev.Port, 9000)
			}
			if loaded.CSS.Minify {
				t.Error("CSS.Minify should survive a round trip as false")
			}

			loaded.Dev.Port = 9001
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			reloaded, err := LoadFile(configPath)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if reloaded.Dev.Port != 9001 {
				t.Errorf("Dev.Port = %d, want %d", reloaded.Dev.Port, 9001)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Dev.Port = -1 }},
		{"port too large", func(c *Config) { c.Dev.Port = 70000 }},
		{"hash length zero", func(c *Config) { c.Render.HashLength = 0 }},
		{"hash length too large", func(c *Config) { c.Render.HashLength = 17 }},
		{"empty scope attr", func(c *Config) { c.Render.ScopeAttr = "" }},
		{"bad scope attr", func(c *Config) { c.Render.ScopeAttr = "1scope" }},
		{"scope attr with space", func(c *Config) { c.Render.ScopeAttr = "my scope" }},
		{"unknown target", func(c *Config) { c.CSS.Targets = []string{"netscape4"} }},
	}

	if err := New().Validate(); err != nil {
		t.Errorf("Validate should pass for default config: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.HasCode(err, "E122") {
				t.Errorf("Validate() = %v, want E122", err)
			}
		})
	}
}

func TestValidatePublish(t *testing.T) {
	cfg := New()
	if err := cfg.ValidatePublish(); !errors.HasCode(err, "E122") {
		t.Errorf("ValidatePublish() = %v, want E122", err)
	}
	cfg.Publish.Bucket = "site"
	if err := cfg.ValidatePublish(); err != nil {
		t.Errorf("ValidatePublish() = %v", err)
	}
}

func TestDevAddress(t *testing.T) {
	cfg := New()
	cfg.Dev.Port = 8080
	cfg.Dev.Host = "0.0.0.0"

	if addr := cfg.DevAddress(); addr != "0.0.0.0:8080" {
		t.Errorf("DevAddress = %q, want %q", addr, "0.0.0.0:8080")
	}
	if url := New().DevURL(); url != "http://localhost:3000" {
		t.Errorf("DevURL = %q, want %q", url, "http://localhost:3000")
	}
}

func TestOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := New()
	if err := cfg.SaveTo(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	if got := cfg.OutputPath(); got != filepath.Join(tmpDir, "dist") {
		t.Errorf("OutputPath = %q, want %q", got, filepath.Join(tmpDir, "dist"))
	}
	cfg.Build.Output = "/absolute/path"
	if got := cfg.OutputPath(); got != "/absolute/path" {
		t.Errorf("OutputPath absolute = %q, want %q", got, "/absolute/path")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := New().SaveTo(filepath.Join(tmpDir, YAMLConfigFileName)); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(tmpDir)
	if root != want {
		t.Errorf("root = %q, want %q", root, want)
	}
	if !Exists(tmpDir) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}
