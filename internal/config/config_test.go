package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/config"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GEMINI_API_KEY", "STUDYLAB_BIND"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigUsesEnvKeys(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "router-key")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.LLM.APIKey != "router-key" {
		t.Fatalf("expected llm key from env, got %q", cfg.LLM.APIKey)
	}
	if cfg.Gemini.APIKey != "gem-key" {
		t.Fatalf("expected gemini key from env, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Server.Bind != config.Default().Server.Bind {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" || cfg.LLM.Temperature != 0.7 {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
}

func TestOpenAIKeyTakesPrecedenceOverOpenRouter(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("OPENROUTER_API_KEY", "router-key")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "openai-key" {
		t.Fatalf("expected OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "studylab.toml")
	content := `
[server]
bind = "0.0.0.0:8080"

[llm]
provider = "GEMINI"
model = " gpt-4o-mini "
temperature = 0.2

[gemini]
api_key = "file-key"

[logging]
format = "JSON"
level = "Debug"
dir = "` + filepath.ToSlash(filepath.Join(dir, "logs")) + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Server.Bind != "0.0.0.0:8080" {
		t.Fatalf("unexpected bind %q", cfg.Server.Bind)
	}
	if cfg.LLM.Provider != config.ProviderGemini || cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Temperature != 0.2 {
		t.Fatalf("unexpected llm section %+v", cfg.LLM)
	}
	if cfg.LLM.BaseURL == "" {
		t.Fatal("expected default base url to survive partial section")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section %+v", cfg.Logging)
	}
	if cfg.Logging.Dir != filepath.Join(dir, "logs") {
		t.Fatalf("unexpected log dir %q", cfg.Logging.Dir)
	}
	if err := cfg.RequireProvider(""); err != nil {
		t.Fatalf("gemini key from file should satisfy default provider: %v", err)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[llm\nprovider="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "unknown provider", mutate: func(c *config.Config) { c.LLM.Provider = "claude" }, wantErr: "llm.provider"},
		{name: "temperature high", mutate: func(c *config.Config) { c.LLM.Temperature = 2.5 }, wantErr: "llm.temperature"},
		{name: "temperature negative", mutate: func(c *config.Config) { c.LLM.Temperature = -0.1 }, wantErr: "llm.temperature"},
		{name: "timeout", mutate: func(c *config.Config) { c.LLM.TimeoutSeconds = -1 }, wantErr: "llm.timeout_seconds"},
		{name: "log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "log level", mutate: func(c *config.Config) { c.Logging.Level = "trace" }, wantErr: "logging.level"},
		{name: "bind", mutate: func(c *config.Config) { c.Server.Bind = "" }, wantErr: "server.bind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRequireProvider(t *testing.T) {
	cfg := config.Default()
	if err := cfg.RequireProvider(""); err == nil {
		t.Fatal("expected missing openai key error")
	}
	if err := cfg.RequireProvider("mystery"); err == nil {
		t.Fatal("expected unknown provider error")
	}
	cfg.Gemini.APIKey = "g"
	if err := cfg.RequireProvider(config.ProviderGemini); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cfg.ConfiguredProviders()
	if len(got) != 1 || got[0] != config.ProviderGemini {
		t.Fatalf("unexpected configured providers %v", got)
	}
	cfg.LLM.APIKey = "o"
	cfg.LLM.Provider = config.ProviderGemini
	got = cfg.ConfiguredProviders()
	if len(got) != 2 || got[0] != config.ProviderGemini || got[1] != config.ProviderOpenAI {
		t.Fatalf("expected default provider first, got %v", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	var cfg config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.LLM.Provider != config.ProviderOpenAI || cfg.Gemini.Model == "" {
		t.Fatalf("unexpected sample values %+v", cfg)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(data) != config.SampleConfig() {
		t.Fatal("written sample differs from embedded sample")
	}
}
